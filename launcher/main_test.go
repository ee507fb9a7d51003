package launcher

import (
	"testing"

	"github.com/fatih/color"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

func TestMain(m *testing.M) {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	log = l.Sugar()

	// keep the confirmation message free of escape codes so it can be compared byte for byte
	color.NoColor = true

	goleak.VerifyTestMain(m)
}
