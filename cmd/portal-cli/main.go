package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"lang-portal/internal/userclient"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:8080", "portal service base URL")
	perPage := flag.Int("per-page", 10, "page size for listings")
	timeout := flag.Duration("timeout", 5*time.Second, "HTTP timeout")
	flag.Parse()

	err := userclient.Run(context.Background(), os.Stdin, os.Stdout, userclient.Config{
		ServerURL:   *server,
		PerPage:     *perPage,
		HTTPTimeout: *timeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
