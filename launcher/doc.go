/*
Package launcher supervises a Playwright browser server started through the playwright CLI.

The server prints its WebSocket endpoint once it is ready to accept connections. The launcher
echoes all of the server's combined stdout and stderr to the operator, line by line, and captures
the first ws:// token it sees. Later tokens are ignored. The captured endpoint is what gets passed
to the connector.

Cancelling the context given to Supervisor.Run sends SIGTERM to the server and waits for it to exit.
*/
package launcher
