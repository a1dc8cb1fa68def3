package actions

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// formatCommand renders ::command key=value,...::message.
func formatCommand(command string, properties map[string]string, message string) string {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(command)
	if len(properties) > 0 {
		keys := make([]string, 0, len(properties))
		for k := range properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" ")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(escapeProperty(properties[k]))
		}
	}
	b.WriteString("::")
	b.WriteString(escapeData(message))
	return b.String()
}

var dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

var propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

func escapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}

// appendKeyValue writes name<<delimiter, value, delimiter to a command file.
func appendKeyValue(path, name, value string) error {
	delimiter := newDelimiter()
	if strings.Contains(name, delimiter) {
		return fmt.Errorf(messages.ActionsDelimiterInNameFmt, name)
	}
	if strings.Contains(value, delimiter) {
		return fmt.Errorf(messages.ActionsDelimiterInValueFmt, name)
	}
	return appendLine(path, name+"<<"+delimiter+"\n"+value+"\n"+delimiter)
}

func appendLine(path, line string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf(messages.ActionsCommandFileFmt, path, err)
	}
	if _, err := file.WriteString(line + "\n"); err != nil {
		_ = file.Close()
		return fmt.Errorf(messages.ActionsCommandFileFmt, path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf(messages.ActionsCommandFileFmt, path, err)
	}
	return nil
}
