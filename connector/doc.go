// Package connector drives one scripted browsing session against a remote Playwright browser server.
package connector
