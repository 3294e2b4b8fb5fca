// Command tvbcat reads a file into a tvb.Buffer and walks a small
// descriptor of subset/decompress/accessor steps over it, printing the
// final field value. It exercises pkg/tvb end to end the way
// cmd/server exercises pkg/rtmp, and is explicitly outside the
// library's own external interface (spec.md §6 places CLI surfaces
// out of scope for the core itself).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tvbgo/tvb/pkg/tvb"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("tvbcat failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		file string
		ops  string
	)

	cmd := &cobra.Command{
		Use:   "tvbcat",
		Short: "Walk a tvb.Buffer derivation chain over a file and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(file, ops)
		},
	}

	fs := pflag.NewFlagSet("tvbcat", pflag.ContinueOnError)
	fs.StringVarP(&file, "file", "f", "", "input file (required)")
	fs.StringVarP(&ops, "ops", "o", "", "comma-separated step chain, e.g. subset:14:64,u32be:0")
	cmd.Flags().AddFlagSet(fs)
	cmd.MarkFlagRequired("file")

	return cmd
}

func run(path, opsDescriptor string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	buf, err := tvb.NewReal(data, len(data), len(data), nil)
	if err != nil {
		return fmt.Errorf("constructing root buffer: %w", err)
	}
	defer tvb.FreeChain(buf)

	steps, err := parseDescriptor(opsDescriptor)
	if err != nil {
		return err
	}

	cur := buf
	cfg := tvb.DefaultCompressConfig()

	for _, step := range steps {
		switch step.name {
		case "subset":
			if len(step.args) != 2 {
				return fmt.Errorf("subset needs offset,length")
			}
			next, err := tvb.NewSubset(cur, step.args[0], step.args[1], -1)
			if err != nil {
				return fmt.Errorf("subset: %w", err)
			}
			cur = next

		case "decompress":
			if len(step.args) != 2 {
				return fmt.Errorf("decompress needs offset,length")
			}
			next, status, err := tvb.Uncompress(cur, step.args[0], step.args[1], cfg)
			if err != nil {
				return fmt.Errorf("decompress: %w", err)
			}
			if status == tvb.DecompressFailed {
				return fmt.Errorf("decompress: stream could not be decoded")
			}
			if status == tvb.DecompressPartial {
				slog.Warn("decompress produced a partial result", "reason", "capture truncated mid-stream")
			}
			cur = next

		case "u8", "u16be", "u16le", "u24be", "u24le", "u32be", "u32le", "u64be", "u64le",
			"f32be", "f32le", "f64be", "f64le", "ipv4", "ipv6", "string", "hex":
			v, err := printAccessor(cur, step)
			if err != nil {
				return fmt.Errorf("%s: %w", step.name, err)
			}
			fmt.Println(v)
			return nil

		default:
			return fmt.Errorf("unknown step %q", step.name)
		}
	}

	fmt.Printf("final buffer length=%d reportedLength=%d\n", cur.Length(), cur.ReportedLength())
	return nil
}

func printAccessor(b *tvb.Buffer, step op) (string, error) {
	if len(step.args) < 1 {
		return "", fmt.Errorf("accessor step needs an offset argument")
	}
	offset := step.args[0]

	switch step.name {
	case "u8":
		v, err := tvb.GetU8(b, offset)
		return fmt.Sprintf("%d", v), err
	case "u16be":
		v, err := tvb.GetU16BE(b, offset)
		return fmt.Sprintf("%d", v), err
	case "u16le":
		v, err := tvb.GetU16LE(b, offset)
		return fmt.Sprintf("%d", v), err
	case "u24be":
		v, err := tvb.GetU24BE(b, offset)
		return fmt.Sprintf("%d", v), err
	case "u24le":
		v, err := tvb.GetU24LE(b, offset)
		return fmt.Sprintf("%d", v), err
	case "u32be":
		v, err := tvb.GetU32BE(b, offset)
		return fmt.Sprintf("%d", v), err
	case "u32le":
		v, err := tvb.GetU32LE(b, offset)
		return fmt.Sprintf("%d", v), err
	case "u64be":
		v, err := tvb.GetU64BE(b, offset)
		return fmt.Sprintf("%d", v), err
	case "u64le":
		v, err := tvb.GetU64LE(b, offset)
		return fmt.Sprintf("%d", v), err
	case "f32be":
		v, err := tvb.GetF32BE(b, offset)
		return fmt.Sprintf("%v", v), err
	case "f32le":
		v, err := tvb.GetF32LE(b, offset)
		return fmt.Sprintf("%v", v), err
	case "f64be":
		v, err := tvb.GetF64BE(b, offset)
		return fmt.Sprintf("%v", v), err
	case "f64le":
		v, err := tvb.GetF64LE(b, offset)
		return fmt.Sprintf("%v", v), err
	case "ipv4":
		v, err := tvb.GetIPv4(b, offset)
		return v.String(), err
	case "ipv6":
		v, err := tvb.GetIPv6(b, offset)
		return v.String(), err
	case "string":
		if len(step.args) != 2 {
			return "", fmt.Errorf("string needs offset,length")
		}
		return tvb.GetString(b, offset, step.args[1])
	case "hex":
		if len(step.args) != 2 {
			return "", fmt.Errorf("hex needs offset,length")
		}
		ptr, err := tvb.GetPtr(b, offset, step.args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%x", ptr), nil
	}
	return "", fmt.Errorf("unsupported accessor %q", step.name)
}
