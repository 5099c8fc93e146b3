// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// httpreq demonstrates the httpclient package: issue a single
// HTTP/HTTPS request, print the resulting status and body, and honor
// SIGINT by cancelling the request in flight instead of letting the
// process die mid-transfer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jfabello/httpclientgo/httpclient"
	"github.com/jfabello/httpclientgo/internal/govars"
)

var (
	method  = flag.String("method", "GET", "HTTP method: GET, POST, PUT, DELETE, PATCH, HEAD")
	timeout = flag.Duration("timeout", httpclient.DefaultTimeout, "request-phase and response-phase timeout")
	header  = flag.String("header", "", "comma-separated Name=Value request headers")
	body    = flag.String("body", "", "request body, sent as raw text under UTF-8")
	noJSON  = flag.Bool("no-json-parse", false, "disable automatic JSON response decoding")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <url>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Issues one HTTP/HTTPS request and prints the result.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s https://example.com\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -method POST -body '{\"hi\":1}' https://example.com/api\n", os.Args[0])
		os.Exit(1)
	}
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: exactly one URL argument is required\n\n")
		flag.Usage()
	}
	url := flag.Arg(0)

	logLevel := slog.LevelInfo
	if govars.Value("trace") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	opts := &httpclient.Options{
		Method:  strings.ToUpper(*method),
		Timeout: *timeout,
		Headers: parseHeaders(*header),
	}
	if *body != "" {
		opts.Body = httpclient.NewTextBody(*body, "utf8")
	}
	if *noJSON {
		f := false
		opts.AutoJSONResponseParse = &f
	}

	req, err := httpclient.New(url, opts)
	if err != nil {
		logger.Error("invalid request", "error", err)
		os.Exit(1)
	}

	resultCh, err := req.Perform(context.Background())
	if err != nil {
		logger.Error("perform unavailable", "error", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("interrupt received, cancelling request")
		if cancelCh, err := req.Cancel(); err == nil {
			<-cancelCh
		}
	}()

	start := time.Now()
	result := <-resultCh
	signal.Stop(sigCh)
	elapsed := time.Since(start)

	if result.Err != nil {
		logger.Error("request failed", "error", result.Err, "elapsed", elapsed)
		os.Exit(1)
	}

	logger.Info("request completed",
		"status_code", result.Response.StatusCode,
		"status_message", result.Response.StatusMessage,
		"elapsed", elapsed,
	)
	switch body := result.Response.Body.(type) {
	case nil:
	case []byte:
		fmt.Println(string(body))
	default:
		fmt.Printf("%v\n", body)
	}
}

// parseHeaders turns a "Name=Value,Name2=Value2" flag value into an
// order-preserving header list, in the order given on the command line.
func parseHeaders(raw string) []httpclient.Header {
	if raw == "" {
		return nil
	}
	var out []httpclient.Header
	for _, part := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		out = append(out, httpclient.Header{Name: strings.TrimSpace(k), Value: strings.TrimSpace(v)})
	}
	return out
}
