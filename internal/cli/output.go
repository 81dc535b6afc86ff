// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-webcrypto.
//
// go-webcrypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new printer with the specified format. Unknown
// formats are reported when printing.
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(strings.ToLower(format)),
		writer: writer,
	}
}

// PrintResult prints the outcome of a dispatched request.
func (p *Printer) PrintResult(result *webcrypto.Result) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(result)
	case OutputFormatYAML:
		return p.printYAML(result)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Operation: %s\n", result.Operation)
		fmt.Fprintf(p.writer, "Algorithm: %s\n", result.Algorithm)
		if result.KeyPair != nil {
			p.printKey("Public key", result.KeyPair.PublicKey)
			p.printKey("Private key", result.KeyPair.PrivateKey)
		}
		p.printKey("Key", result.Key)
		if result.KeyData != nil {
			if result.KeyData.JWK != nil {
				data, err := json.Marshal(result.KeyData.JWK)
				if err != nil {
					return fmt.Errorf("failed to encode JWK: %w", err)
				}
				fmt.Fprintf(p.writer, "Key data (jwk): %s\n", data)
			} else {
				fmt.Fprintf(p.writer, "Key data: %s\n", base64.StdEncoding.EncodeToString(result.KeyData.Bytes))
			}
		}
		if result.Output != nil {
			fmt.Fprintf(p.writer, "Output: %s\n", base64.StdEncoding.EncodeToString(result.Output))
		}
		if result.Verified != nil {
			fmt.Fprintf(p.writer, "Verified: %t\n", *result.Verified)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

func (p *Printer) printKey(label string, key *webcrypto.CryptoKey) {
	if key == nil {
		return
	}
	fmt.Fprintf(p.writer, "%s:\n", label)
	if key.ID != "" {
		fmt.Fprintf(p.writer, "  ID:          %s\n", key.ID)
	}
	fmt.Fprintf(p.writer, "  Type:        %s\n", key.Type)
	fmt.Fprintf(p.writer, "  Algorithm:   %s\n", key.AlgorithmName())
	if alg, ok := key.Algorithm.(*webcrypto.RsaHashedKeyAlgorithm); ok {
		fmt.Fprintf(p.writer, "  Hash:        %s\n", alg.Hash.Name)
		fmt.Fprintf(p.writer, "  Modulus:     %d\n", alg.ModulusLength)
	}
	fmt.Fprintf(p.writer, "  Extractable: %t\n", key.Extractable)
	usages := make([]string, len(key.Usages))
	for i, u := range key.Usages {
		usages[i] = string(u)
	}
	fmt.Fprintf(p.writer, "  Usages:      %s\n", strings.Join(usages, ", "))
}

// PrintAlgorithms prints the registered algorithm families.
func (p *Printer) PrintAlgorithms(algorithms []webcrypto.AlgorithmInfo) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(algorithms)
	case OutputFormatYAML:
		return p.printYAML(algorithms)
	case OutputFormatText:
		for _, a := range algorithms {
			ops := make([]string, len(a.Operations))
			for i, op := range a.Operations {
				ops[i] = string(op)
			}
			usages := make([]string, len(a.Usages))
			for i, u := range a.Usages {
				usages[i] = string(u)
			}
			fmt.Fprintf(p.writer, "%s\n", a.Name)
			fmt.Fprintf(p.writer, "  Operations: %s\n", strings.Join(ops, ", "))
			fmt.Fprintf(p.writer, "  Usages:     %s\n", strings.Join(usages, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintVersion prints build information.
func (p *Printer) PrintVersion() error {
	info := map[string]string{
		"version":    Version,
		"commit":     GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(info)
	case OutputFormatYAML:
		return p.printYAML(info)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "webcrypto version %s\n", Version)
		fmt.Fprintf(p.writer, "Git commit: %s\n", GitCommit)
		fmt.Fprintf(p.writer, "Build date: %s\n", BuildDate)
		fmt.Fprintf(p.writer, "Go version: %s\n", runtime.Version())
		fmt.Fprintf(p.writer, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error. Validation errors carry their kind, code
// and offending parameter.
func (p *Printer) PrintError(err error) error {
	body := map[string]any{
		"status": "error",
		"error":  err.Error(),
	}
	var werr *webcrypto.Error
	isValidation := errors.As(err, &werr)
	if isValidation {
		body["kind"] = werr.Kind.String()
		body["code"] = werr.Code
		if werr.Param != "" {
			body["param"] = werr.Param
		}
	}

	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(body)
	case OutputFormatYAML:
		return p.printYAML(body)
	default:
		if isValidation {
			fmt.Fprintf(p.writer, "Error: %v (%s, code %d)\n", err, werr.Kind, werr.Code)
			return nil
		}
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	}
}

func (p *Printer) printJSON(data any) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printYAML renders data through its JSON form so that json tags, base64
// byte fields and JWK encoding match the JSON output.
func (p *Printer) printYAML(data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	clearStyle(&node)
	encoder := yaml.NewEncoder(p.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(&node); err != nil {
		return err
	}
	return encoder.Close()
}

// clearStyle switches flow-style JSON nodes to block style.
func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}
