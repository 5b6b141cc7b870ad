package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeDomain "hufschlaeger.net/todo-client/internal/domain/store"
	"hufschlaeger.net/todo-client/internal/domain/todo"
	"hufschlaeger.net/todo-client/internal/timing"
)

func TestExporter_GenerateFilename(t *testing.T) {
	h := newHarness(t)
	home := h.store.SeedProject(storeDomain.Project{Name: "Home Office"})
	require.NoError(t, h.coord.Load(context.Background()))
	e := NewExporter(h.coord, timing.FixedClock{T: serviceNow}, nil)

	assert.Equal(t, "todos-alltasks-2024-06-10.md", e.GenerateFilename())

	h.coord.SelectProject(string(home.ID))
	h.coord.SetView(todo.ViewNext7Days)
	assert.Equal(t, "todos-next7days-home-office-2024-06-10.md", e.GenerateFilename())
}

func TestExporter_GenerateMarkdown(t *testing.T) {
	h := newHarness(t)
	home := h.store.SeedProject(storeDomain.Project{Name: "Home"})
	h.seed("Pay *rent*", "high", "2024-06-08", false, string(home.ID))
	h.seed("Call mom", "low", "2024-06-10", false, "")
	h.seed("Old chore", "medium", "2024-06-01", true, "")
	require.NoError(t, h.coord.Load(context.Background()))
	e := NewExporter(h.coord, timing.FixedClock{T: serviceNow}, nil)

	md := e.GenerateMarkdown(h.coord.Tasks.Presented())

	assert.True(t, strings.HasPrefix(md, "# Todo Export - All Tasks\n\n"))
	assert.Contains(t, md, "**Anzahl Tasks:** 3")
	assert.Contains(t, md, "### Pay \\*rent\\*")
	assert.Contains(t, md, "| **Status** | ⚠️ überfällig |")
	assert.Contains(t, md, "| **Status** | 📅 heute fällig |")
	assert.Contains(t, md, "| **Projekt** | Home |")
	assert.Contains(t, md, "| **Fällig** | Jun 8, 2024 |")

	open := strings.Index(md, "## 🟢 Offene Tasks")
	done := strings.Index(md, "## ✅ Erledigte Tasks")
	require.GreaterOrEqual(t, open, 0)
	require.Greater(t, done, open)
	assert.Greater(t, strings.Index(md, "### Old chore"), done)
}

func TestExporter_ExportToFile(t *testing.T) {
	h := newHarness(t)
	h.seed("Call mom", "low", "2024-06-10", false, "")
	require.NoError(t, h.coord.Load(context.Background()))
	var progress bytes.Buffer
	e := NewExporter(h.coord, timing.FixedClock{T: serviceNow}, &progress)

	target := filepath.Join(t.TempDir(), "out.md")
	name, err := e.ExportToFile(target)
	require.NoError(t, err)
	assert.Equal(t, target, name)
	assert.Contains(t, progress.String(), "📄 Exportiere zu Markdown-Datei...")
	assert.Contains(t, progress.String(), "✅ Datei erstellt: "+target+" (1 Tasks)")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "### Call mom")
}
