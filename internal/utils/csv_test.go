package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitCSVLinePlain(t *testing.T) {
	require.Equal(t,
		[]string{"1001", "11:12 AM 6/1/2024", "Completed"},
		SplitCSVLine("1001,11:12 AM 6/1/2024,Completed"))
}

func TestSplitCSVLineQuotedCommas(t *testing.T) {
	require.Equal(t,
		[]string{"1001", "Milk Tea; Taro Slush", "Doe, Jane", "$12.50"},
		SplitCSVLine(`1001,"Milk Tea; Taro Slush","Doe, Jane",$12.50`))
}

func TestSplitCSVLineEmptyFields(t *testing.T) {
	require.Equal(t, []string{"a", "", "c", ""}, SplitCSVLine("a,,c,"))
}

func TestSplitCSVLineTrimsWhitespace(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, SplitCSVLine(" a , b "))
}
