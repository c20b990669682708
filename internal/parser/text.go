package parser

import "strings"

type textReader struct{}

func (textReader) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (textReader) Read(path string, _ Options) ([][]string, error) {
	return readText(path)
}
