package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/cil-metadata/signature"
	"github.com/wippyai/cil-metadata/typesys"
)

func main() {
	var (
		blobHex     = flag.String("blob", "", "Signature blob as hex (e.g. 20010 80e)")
		blobFile    = flag.String("file", "", "Path to a file holding raw blob bytes")
		kind        = flag.String("kind", "method", "Blob kind: method|field|property|locals|typespec|methodspec")
		registry    = flag.Bool("registry", false, "Dump the bootstrapped type registry and exit")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			typesys.SetLogger(logger)
		}
	}

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *registry {
		if err := dumpRegistry(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *blobHex == "" && *blobFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: metainspect -blob <hex> [-kind method|field|property|locals|typespec|methodspec]")
		fmt.Fprintln(os.Stderr, "       metainspect -file <path> [-kind ...]")
		fmt.Fprintln(os.Stderr, "       metainspect -registry")
		fmt.Fprintln(os.Stderr, "       metainspect -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*blobHex, *blobFile, *kind); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readBlob(blobHex, blobFile string) ([]byte, error) {
	if blobFile != "" {
		data, err := os.ReadFile(blobFile)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return data, nil
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n':
			return -1
		}
		return r
	}, blobHex)
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return data, nil
}

func run(blobHex, blobFile, kind string) error {
	data, err := readBlob(blobHex, blobFile)
	if err != nil {
		return err
	}

	fmt.Printf("Blob: % X (%d bytes)\n\n", data, len(data))

	rendered, err := decodeBlob(data, kind)
	if err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	fmt.Println(rendered)
	return nil
}

// decodeBlob runs one decode operation and renders the result. Shared
// by the flag and interactive front ends.
func decodeBlob(data []byte, kind string) (string, error) {
	d := signature.NewDecoder(data)

	switch kind {
	case "method":
		sig, err := d.DecodeMethod()
		if err != nil {
			return "", err
		}
		return signature.FormatMethod(sig), nil

	case "field":
		sig, err := d.DecodeField()
		if err != nil {
			return "", err
		}
		return "field " + signature.Format(sig.Type), nil

	case "property":
		sig, err := d.DecodeProperty()
		if err != nil {
			return "", err
		}
		var b strings.Builder
		if sig.HasThis {
			b.WriteString("instance ")
		}
		b.WriteString("property ")
		b.WriteString(signature.Format(sig.Type))
		b.WriteByte('[')
		for i, p := range sig.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(signature.Format(p.Type))
		}
		b.WriteByte(']')
		return b.String(), nil

	case "locals":
		sig, err := d.DecodeLocalVars()
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for i, local := range sig.Locals {
			fmt.Fprintf(&b, "[%d] ", i)
			if local.Pinned {
				b.WriteString("pinned ")
			}
			if local.ByRef {
				b.WriteString("ref ")
			}
			b.WriteString(signature.Format(local.Type))
			b.WriteByte('\n')
		}
		return strings.TrimRight(b.String(), "\n"), nil

	case "typespec":
		sig, err := d.DecodeTypeSpec()
		if err != nil {
			return "", err
		}
		return signature.Format(sig.Type), nil

	case "methodspec":
		sig, err := d.DecodeMethodSpec()
		if err != nil {
			return "", err
		}
		args := make([]string, len(sig.GenericArgs))
		for i, arg := range sig.GenericArgs {
			args[i] = signature.Format(arg)
		}
		return "<" + strings.Join(args, ", ") + ">", nil
	}

	return "", fmt.Errorf("unknown blob kind %q", kind)
}

func dumpRegistry() error {
	reg, err := typesys.NewRegistry()
	if err != nil {
		return fmt.Errorf("create registry: %w", err)
	}

	fmt.Printf("Registry: %d types\n\n", reg.Len())
	for _, entity := range reg.All() {
		base := ""
		if b := entity.Base(); b != nil {
			base = " : " + b.FullName()
		}
		fmt.Printf("  %s  %-30s %s%s\n", entity.Token, entity.FullName(), entity.Flavor(), base)
	}
	return nil
}
