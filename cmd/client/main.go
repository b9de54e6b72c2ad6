package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddr string `envconfig:"SERVER_ADDR" default:"localhost:8080"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run dials the chat server, pumps stdin towards it and renders the
// incoming traffic until either side closes the stream.
func run() (int, error) {
	var config Config
	if err := envconfig.Process("chat", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	conn, err := net.Dial("tcp", config.ServerAddr)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddr, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 4096)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				render(string(buf[:n]))
			}
			if err != nil {
				return
			}
		}
	}()

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if _, err := fmt.Fprintln(conn, scanner.Text()); err != nil {
				return
			}
		}
		// stdin closed: leave politely so peers get the announcement
		_, _ = fmt.Fprintln(conn, "exit")
	}()

	<-done
	return exitOK, nil
}

// render colorizes a received chunk: membership banners in yellow,
// chat history lines in green, everything else as-is. Chunks map to
// whole server writes in practice, so per-chunk styling is enough.
func render(chunk string) {
	trimmed := strings.TrimSpace(chunk)
	switch {
	case strings.HasPrefix(trimmed, "***"):
		fmt.Print(color.New(color.FgYellow).Render(chunk))
	case strings.HasPrefix(trimmed, "["):
		fmt.Print(color.New(color.FgGreen).Render(chunk))
	default:
		fmt.Print(chunk)
	}
}
