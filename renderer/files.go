package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/erraggy/declgen/declaration"
	"github.com/erraggy/declgen/internal/fileutil"
)

// moduleStatement matches import and module statements that point at the
// main or the globals module.
var moduleStatement = regexp.MustCompile(`(".*/(?:highcharts|globals)+)(";|" \{)`)

// SourceVariant rewrites references to the main and globals modules to
// their ".src" counterparts.
// Example: `import * as globals from "./globals";` -> `... from "./globals.src";`
func SourceVariant(text string) string {
	return moduleStatement.ReplaceAllString(text, "$1.src$2")
}

// File is one rendered declaration file.
type File struct {
	// Name is the slash separated path relative to the output directory
	Name string
	// Content is the declaration text
	Content []byte
}

// Files renders module as the declaration file for the module key and its
// ".src" variant.
// Example: "code/highcharts" -> "code/highcharts.d.ts", "code/highcharts.src.d.ts"
func Files(key string, module *declaration.Declaration) []File {
	text := Render(module)
	return []File{
		{Name: key + ".d.ts", Content: []byte(text)},
		{Name: key + ".src.d.ts", Content: []byte(SourceVariant(text))},
	}
}

// WriteFiles writes files below dir, creating directories as needed.
func WriteFiles(dir string, files []File) error {
	for _, f := range files {
		name := filepath.FromSlash(f.Name)
		if !filepath.IsLocal(name) {
			return fmt.Errorf("invalid file name %q: must be a relative path inside the output directory", f.Name)
		}
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), fileutil.DirReadableByAll); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(path, f.Content, fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("failed to write file %s: %w", f.Name, err)
		}
	}
	return nil
}
