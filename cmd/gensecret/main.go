// Prints a random key suitable for SECRET_KEY
package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

const (
	defaultKeyLen = 32
	minKeyLen     = 16
)

func main() {
	if err := run(os.Stdout, rand.Reader, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error while generating secret key: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, random io.Reader, args []string) error {
	fs := pflag.NewFlagSet("gensecret", pflag.ContinueOnError)
	length := fs.IntP("bytes", "n", defaultKeyLen, "Number of random bytes")
	encoding := fs.StringP("encoding", "f", "hex", "Output encoding (hex, base64)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *length < minKeyLen {
		return fmt.Errorf("key must be at least %d bytes", minKeyLen)
	}

	b := make([]byte, *length)
	if _, err := io.ReadFull(random, b); err != nil {
		return err
	}

	switch *encoding {
	case "hex":
		_, err := fmt.Fprintln(out, hex.EncodeToString(b))
		return err
	case "base64":
		_, err := fmt.Fprintln(out, base64.RawURLEncoding.EncodeToString(b))
		return err
	default:
		return fmt.Errorf("unknown encoding %q", *encoding)
	}
}
