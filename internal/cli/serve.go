package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/api"
)

// portSearch is how many ports above the requested one serve will try.
const portSearch = 20

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Start the local web UI with live palette updates")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetDefault(3000).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("Port to listen on; the next free port is used if taken").
		Register(cmd)

	ctx.ServeNoOpen, _ = ra.NewBool("no-open").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Don't open the UI in a browser").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(port int, noOpen bool) {
	app, err := NewApp(false)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	ln, err := listenFrom("localhost", port, portSearch)
	if err != nil {
		Fatal(err)
	}

	server := api.NewServer(api.NewHandler(app.PaletteService), app.Paths.DataDir())
	url := "http://" + ln.Addr().String()

	fmt.Printf("Serving palettes at %s\n", RenderURL(url))
	fmt.Println(RenderMuted(fmt.Sprintf("Watching %s. Press Ctrl+C to stop.", app.Paths.DataDir())))
	if !noOpen {
		openInBrowser(url)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() { errs <- server.Serve(ln) }()

	select {
	case err := <-errs:
		if err != nil {
			Fatal(err)
		}
	case <-ctx.Done():
		fmt.Printf("\nStopping (%d live client(s) disconnected)\n", server.ClientCount())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			Fatal(err)
		}
	}
}

// listenFrom binds the first free port in [port, port+search).
func listenFrom(host string, port, search int) (net.Listener, error) {
	var lastErr error
	for p := port; p < port+search; p++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, fmt.Sprint(p)))
		if err == nil {
			return ln, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no free port in %d-%d: %w", port, port+search-1, lastErr)
}

func openInBrowser(url string) {
	name, args := "xdg-open", []string{url}
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", url}
	}
	_ = exec.Command(name, args...).Start()
}
