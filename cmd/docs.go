package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootDoc = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childDoc = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// docType codes whether the command is the root or a child
type docType int

const (
	rootPage docType = iota
	childPage
)

// meta is for describing the position/info for a command doc page
type meta struct {
	docType  docType
	title    string
	navOrder int
	parent   string
}

// map from the base Markdown file name to its build meta
var metaMap = map[string]meta{
	"offtarget":          {rootPage, "offtarget", 0, ""},
	"offtarget_find":     {childPage, "find", 0, "offtarget"},
	"offtarget_classify": {childPage, "classify", 1, "offtarget"},
}

// newDocsCmd is for writing the Markdown documentation of the command tree.
func newDocsCmd(rootCmd *cobra.Command) *cobra.Command {
	docsCmd := &cobra.Command{
		Use:    "docs",
		Short:  "Write Markdown documentation for each command",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return makeDocs(rootCmd, dir)
		},
	}

	docsCmd.Flags().String("dir", "docs", "directory to write the documentation to")

	return docsCmd
}

// makeDocs parses the custom commands and outputs Markdown documentation files
func makeDocs(rootCmd *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create docs dir %s: %w", dir, err)
	}

	rootCmd.DisableAutoGenTag = true
	return doc.GenMarkdownTreeCustom(rootCmd, dir, filePrepender, linkHandler)
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	m, ok := metaMap[docName(filename)]
	if !ok {
		return ""
	}

	switch m.docType {
	case rootPage:
		return fmt.Sprintf(rootDoc, m.title, m.navOrder)
	case childPage:
		return fmt.Sprintf(childDoc, m.title, m.parent, m.navOrder)
	}

	return ""
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	base := docName(filename)
	if base == "offtarget" {
		return "/"
	}
	return base
}

func docName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}
