package trench

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mwiater/trench/internal/util"
)

var toolNameColor = color.New(color.FgGreen).SprintFunc()

// listTools prints the tool catalogue in a two-column layout, names padded
// to the longest entry.
func listTools(out io.Writer, toolList []mcp.Tool) {
	if len(toolList) == 0 {
		fmt.Fprintln(out, "The server exposes no tools.")
		return
	}

	maxNameLength := 0
	for _, tool := range toolList {
		if len(tool.Name) > maxNameLength {
			maxNameLength = len(tool.Name)
		}
	}

	fmt.Fprintf(out, "Available tools (%d):\n", len(toolList))
	for _, tool := range toolList {
		padding := strings.Repeat(" ", maxNameLength-len(tool.Name)+2)
		fmt.Fprintf(out, "  %s%s%s\n", toolNameColor(tool.Name), padding, util.TruncateRunes(tool.Description, 96))
	}
}
