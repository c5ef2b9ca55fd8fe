// solcmeta extracts the Solidity metadata trailer from contract bytecode and
// prints the metadata digest.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"xdao.co/solcmeta/bytecode"
	"xdao.co/solcmeta/compliance"
	"xdao.co/solcmeta/internal/logging"
	"xdao.co/solcmeta/metadata"
	"xdao.co/solcmeta/model"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	raw           bool
	showMetadata  bool
	gateway       bool
	bytecodePath  string
	jsonOut       bool
	strict        bool
	gatewayPrefix string
	codeHash      bool
	verbose       bool
}

func run(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	var opts options
	fs := pflag.NewFlagSet("solcmeta", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.BoolVarP(&opts.raw, "raw", "r", false, "interpret input (stdin or --bytecode) as literal bytes instead of hex")
	fs.BoolVarP(&opts.showMetadata, "metadata", "m", false, "print the decoded metadata fields")
	fs.BoolVarP(&opts.gateway, "gateway", "g", false, "display IPFS digests as gateway URLs")
	fs.StringVarP(&opts.bytecodePath, "bytecode", "b", "", "read bytecode from this file instead of stdin")
	fs.BoolVar(&opts.jsonOut, "json", false, "print the metadata as JSON")
	fs.BoolVar(&opts.strict, "strict", false, "reject multiple digests and unknown fields")
	fs.StringVar(&opts.gatewayPrefix, "gateway-prefix", model.DefaultGatewayPrefix, "IPFS gateway URL prefix used by --gateway")
	fs.BoolVar(&opts.codeHash, "code-hash", false, "also print Keccak-256 code hashes")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log decoding steps to stderr")
	// Under ContinueOnError pflag calls Usage only for -h/--help.
	fs.Usage = func() { printUsage(out, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, err)
		printUsage(errOut, fs)
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(errOut, "unexpected argument: %s\n", fs.Arg(0))
		return 2
	}

	level := log.WarnLevel
	if opts.verbose {
		level = log.DebugLevel
	}
	logger := logging.New(errOut, level)

	code, err := readInput(opts, in)
	if err != nil {
		return fail(errOut, opts, model.ErrorFrom(err, model.ErrInvalidInput))
	}
	logger.Debug("read bytecode", "bytes", len(code), "raw", opts.raw, "source", source(opts))

	mode := compliance.Permissive
	if opts.strict {
		mode = compliance.Strict
	}
	md, err := metadata.DecodeWithOptions(code, metadata.Options{Mode: mode})
	if err != nil {
		logger.Debug("decode failed", "rule", metadata.RuleID(err))
		return fail(errOut, opts, model.ErrorFrom(err, model.ErrInternal))
	}
	logger.Debug("decoded trailer", "mode", mode, "digest", md.Digest != nil)

	if opts.jsonOut {
		prefix := ""
		if opts.gateway {
			prefix = opts.gatewayPrefix
		}
		view := model.FromMetadata(md, prefix)
		if opts.codeHash {
			if h, err := bytecode.StrippedCodeHash(code); err == nil {
				view.StrippedCodeHash = h.Hex()
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			fmt.Fprintf(errOut, "encode json: %v\n", err)
			return 1
		}
		return 0
	}

	if opts.showMetadata {
		printMetadata(out, md)
	}
	if opts.codeHash {
		fmt.Fprintf(out, "code-hash: %s\n", bytecode.CodeHash(code))
		if h, err := bytecode.StrippedCodeHash(code); err == nil {
			fmt.Fprintf(out, "stripped-code-hash: %s\n", h)
		}
	}
	if d := md.Digest; d != nil {
		if d.Kind() == metadata.DigestIPFS && opts.gateway {
			fmt.Fprintln(out, model.GatewayURL(opts.gatewayPrefix, d.Value()))
		} else {
			fmt.Fprintln(out, d.String())
		}
	}
	return 0
}

func readInput(opts options, in io.Reader) ([]byte, error) {
	if opts.bytecodePath != "" {
		return bytecode.ReadFile(opts.bytecodePath, opts.raw)
	}
	return bytecode.ReadStream(in, opts.raw)
}

func source(opts options) string {
	if opts.bytecodePath != "" {
		return opts.bytecodePath
	}
	return "stdin"
}

func printMetadata(w io.Writer, md metadata.Metadata) {
	digest := "none"
	if md.Digest != nil {
		digest = md.Digest.String()
	}
	version := "none"
	if md.CompilerVersion != nil {
		version = md.CompilerVersion.String()
	}
	fmt.Fprintf(w, "digest: %s\n", digest)
	fmt.Fprintf(w, "experimental: %t\n", md.Experimental)
	fmt.Fprintf(w, "solc: %s\n", version)
}

func fail(errOut io.Writer, opts options, e *model.CodedError) int {
	if opts.jsonOut {
		b, err := json.Marshal(e)
		if err == nil {
			fmt.Fprintln(errOut, string(b))
			return 1
		}
	}
	if e.RuleID != "" {
		fmt.Fprintf(errOut, "error: %s (%s)\n", e.Message, e.RuleID)
		return 1
	}
	fmt.Fprintf(errOut, "error: %s\n", e.Message)
	return 1
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "solcmeta: extract Solidity metadata from contract bytecode")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  solcmeta [flags] < code.hex")
	fmt.Fprintln(w, "  solcmeta [flags] --bytecode <file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - hex input may carry a 0x prefix; only the first line of stdin is read")
	fmt.Fprintln(w, "  - the digest URI is printed last; nothing is printed when the trailer has no digest")
}
