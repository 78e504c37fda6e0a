package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/grabar/rules"
	"github.com/revelaction/grabar/storage"
)

// TableHandler loads rule tables from <root>/<name>.tsv files.
type TableHandler struct {
	root string
}

var _ storage.TableReader = (*TableHandler)(nil)

func NewTableHandler(root string) *TableHandler {
	return &TableHandler{root: root}
}

func (th *TableHandler) Table(name string) (*rules.Table, error) {
	return rules.LoadTableFile(filepath.Join(th.root, name+".tsv"))
}

func (th *TableHandler) Names() ([]string, error) {
	entries, err := os.ReadDir(th.root)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".tsv" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".tsv"))
	}
	return names, nil
}
