package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantabase/qmorph/internal/frameworks/braket"
	"github.com/quantabase/qmorph/internal/frameworks/ionq"
	"github.com/quantabase/qmorph/internal/frameworks/qasm"
	"github.com/quantabase/qmorph/internal/frameworks/quil"
)

// readProgram reads a program payload from a file path, or from stdin when
// the path is "-".
func readProgram(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// decodeNative turns raw payload bytes into the native value the framework's
// adapter accepts: program text for text frameworks, a typed program for
// JSON frameworks.
func decodeNative(framework string, data []byte) (any, error) {
	switch framework {
	case qasm.Framework, quil.Framework:
		return string(data), nil
	case ionq.Framework:
		var prog ionq.Program
		if err := json.Unmarshal(data, &prog); err != nil {
			return nil, fmt.Errorf("decode %s program: %w", framework, err)
		}
		return &prog, nil
	case braket.Framework:
		var prog braket.Program
		if err := json.Unmarshal(data, &prog); err != nil {
			return nil, fmt.Errorf("decode %s program: %w", framework, err)
		}
		return &prog, nil
	default:
		// Unknown ids fall through to the registry, which reports the
		// known framework list.
		return string(data), nil
	}
}

// renderNative renders an emitted native circuit for output: text programs
// as-is, structured programs as indented JSON.
func renderNative(native any) (string, error) {
	if text, ok := native.(string); ok {
		return text, nil
	}
	out, err := json.MarshalIndent(native, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
