package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/doccheck/internal/config"
	"github.com/harrison/doccheck/internal/display"
	"github.com/harrison/doccheck/internal/fileutil"
	"github.com/harrison/doccheck/internal/models"
)

// quoteChecker fails any script with an odd number of double quotes
type quoteChecker struct {
	checked []models.ScriptBlock
	err     error
}

func (c *quoteChecker) Check(ctx context.Context, block models.ScriptBlock) (models.CheckResult, error) {
	c.checked = append(c.checked, block)
	if c.err != nil {
		return models.CheckResult{Block: block}, c.err
	}
	if strings.Count(block.Script, `"`)%2 != 0 {
		return models.CheckResult{Block: block, Diagnostics: "SC1078: Did you forget to close this double quoted string?\n"}, nil
	}
	return models.CheckResult{Block: block, Passed: true}, nil
}

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) Checking(b models.ScriptBlock) {
	r.events = append(r.events, "checking "+b.Location())
}
func (r *recordingReporter) Result(res models.CheckResult) {
	if res.Passed {
		r.events = append(r.events, "pass "+res.Block.Location())
	} else {
		r.events = append(r.events, "fail "+res.Block.Location())
	}
}
func (r *recordingReporter) Unterminated(u models.UnterminatedBlock) {
	r.events = append(r.events, "unterminated "+u.Path)
}
func (r *recordingReporter) Summary(s *models.Summary) {
	r.events = append(r.events, "summary")
}

func writeDocs(t *testing.T, root string, docs map[string]string) {
	t.Helper()
	for name, content := range docs {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

var adocOpts = fileutil.WalkOptions{Extensions: []string{".adoc"}, ExcludeDirs: []string{".git"}}

func TestNewOrchestrator_NilChecker(t *testing.T) {
	assert.Panics(t, func() { NewOrchestrator(nil, nil, nil) })
}

func TestScan_NoBlocks(t *testing.T) {
	root := t.TempDir()
	writeDocs(t, root, map[string]string{
		"index.adoc":    "= Docs\n\nNothing to run here.\n",
		"yaml.adoc":     "[source,yaml]\n----\na: b\n----\n",
		"script.sh":     "echo \"unbalanced\n",
		"notes/ref.txt": "[source,bash]\n----\necho \"x\n----\n",
	})

	chk := &quoteChecker{}
	var out bytes.Buffer
	o := NewOrchestrator(chk, display.NewReporter(&out, &out, display.Options{}), nil)

	summary, err := o.Scan(context.Background(), root, adocOpts)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FilesScanned)
	assert.Equal(t, 0, summary.BlocksChecked)
	assert.Equal(t, 0, summary.ExitCode())
	assert.Empty(t, chk.checked)
	assert.Empty(t, out.String(), "non-verbose scan with no blocks prints nothing")
}

func TestScan_ValidAndInvalidBlocks(t *testing.T) {
	root := t.TempDir()
	writeDocs(t, root, map[string]string{
		"guide.adoc": "= Guide\n" + // 1
			"\n" + // 2
			"[source,bash]\n" + // 3
			"----\n" + // 4
			"echo \"fine\"\n" + // 5
			"----\n" + // 6
			"\n" + // 7
			"[source,yaml]\n" + // 8
			"----\n" + // 9
			"k: v\n" + // 10
			"----\n" + // 11
			"\n" + // 12
			"[source,sh]\n" + // 13
			"----\n" + // 14
			"echo \"broken\n" + // 15
			"----\n", // 16
		"sub/more.adoc": "[source,bash]\n----\ntrue\n----\n",
	})

	chk := &quoteChecker{}
	rep := &recordingReporter{}
	o := NewOrchestrator(chk, rep, nil)

	summary, err := o.Scan(context.Background(), root, adocOpts)
	require.NoError(t, err)

	guide := filepath.Join(root, "guide.adoc")
	more := filepath.Join(root, "sub", "more.adoc")

	assert.Equal(t, 2, summary.FilesScanned)
	assert.Equal(t, 3, summary.BlocksChecked)
	assert.Equal(t, 1, summary.Failed())
	assert.Equal(t, 1, summary.ExitCode())
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, guide, summary.Failures[0].Block.Path)
	assert.Equal(t, 13, summary.Failures[0].Block.Line)

	assert.Equal(t, []string{
		"checking " + guide + ":3",
		"pass " + guide + ":3",
		"checking " + guide + ":13",
		"fail " + guide + ":13",
		"checking " + more + ":1",
		"pass " + more + ":1",
		"summary",
	}, rep.events, "failures do not stop later blocks")
}

func TestScan_ReportsFailureLocation(t *testing.T) {
	root := t.TempDir()
	writeDocs(t, root, map[string]string{
		"a.adoc": "\n\n[source,bash]\n----\necho \"oops\n----\n",
	})

	var out bytes.Buffer
	o := NewOrchestrator(&quoteChecker{}, display.NewReporter(&out, nil, display.Options{Color: config.ColorNever}), nil)

	summary, err := o.Scan(context.Background(), root, adocOpts)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ExitCode())

	path := filepath.Join(root, "a.adoc")
	assert.Equal(t,
		"Invalid shell script at "+path+":3:\n"+
			"  SC1078: Did you forget to close this double quoted string?\n",
		out.String())
}

func TestScan_Unterminated(t *testing.T) {
	root := t.TempDir()
	writeDocs(t, root, map[string]string{
		"a.adoc": "[source,bash]\n----\necho ok\n",
	})

	rep := &recordingReporter{}
	o := NewOrchestrator(&quoteChecker{}, rep, nil)

	summary, err := o.Scan(context.Background(), root, adocOpts)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.BlocksChecked)
	assert.Equal(t, 0, summary.ExitCode(), "an unterminated block warns but does not fail")
	assert.Equal(t, []models.UnterminatedBlock{{Path: filepath.Join(root, "a.adoc"), Line: 1}}, summary.Unterminated)
	assert.Equal(t, []string{"unterminated " + filepath.Join(root, "a.adoc"), "summary"}, rep.events)
}

func TestScan_MarkdownWhenConfigured(t *testing.T) {
	root := t.TempDir()
	writeDocs(t, root, map[string]string{
		"README.md": "# Title\n\n```bash\necho \"x\n```\n",
		"a.adoc":    "[source,bash]\n----\ntrue\n----\n",
	})

	chk := &quoteChecker{}
	o := NewOrchestrator(chk, nil, nil)

	summary, err := o.Scan(context.Background(), root, fileutil.WalkOptions{Extensions: []string{".adoc", ".md"}})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.BlocksChecked)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, filepath.Join(root, "README.md"), summary.Failures[0].Block.Path)
	assert.Equal(t, 3, summary.Failures[0].Block.Line)
}

func TestScan_Errors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		o := NewOrchestrator(&quoteChecker{}, nil, nil)
		_, err := o.Scan(context.Background(), filepath.Join(t.TempDir(), "missing"), adocOpts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to walk documentation tree")
	})

	t.Run("unreadable file is fatal", func(t *testing.T) {
		root := t.TempDir()
		writeDocs(t, root, map[string]string{
			"a.adoc": "[source,bash]\n----\ntrue\n----\n",
			"b.adoc": "[source,bash]\n----\ntrue\n----\n",
		})

		chk := &quoteChecker{}
		o := NewOrchestrator(chk, nil, nil)
		o.readFile = func(path string) ([]byte, error) {
			if filepath.Base(path) == "a.adoc" {
				return nil, os.ErrPermission
			}
			return os.ReadFile(path)
		}

		summary, err := o.Scan(context.Background(), root, adocOpts)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Contains(t, err.Error(), "failed to read")
		assert.Empty(t, chk.checked, "no later file is checked after a fatal error")
		assert.Equal(t, 0, summary.FilesScanned)
	})

	t.Run("checker error is fatal", func(t *testing.T) {
		root := t.TempDir()
		writeDocs(t, root, map[string]string{
			"a.adoc": "[source,bash]\n----\ntrue\n----\n[source,bash]\n----\ntrue\n----\n",
		})

		launchErr := errors.New("exec: \"podman\": executable file not found in $PATH")
		chk := &quoteChecker{err: launchErr}
		o := NewOrchestrator(chk, nil, nil)

		_, err := o.Scan(context.Background(), root, adocOpts)
		require.Error(t, err)
		assert.ErrorIs(t, err, launchErr)
		assert.Len(t, chk.checked, 1)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		root := t.TempDir()
		writeDocs(t, root, map[string]string{"a.txt": "text"})

		o := NewOrchestrator(&quoteChecker{}, nil, nil)
		_, err := o.Scan(context.Background(), root, fileutil.WalkOptions{Extensions: []string{".txt"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown extension")
	})

	t.Run("cancelled context", func(t *testing.T) {
		root := t.TempDir()
		writeDocs(t, root, map[string]string{"a.adoc": "[source,bash]\n----\ntrue\n----\n"})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		chk := &quoteChecker{}
		o := NewOrchestrator(chk, nil, nil)
		_, err := o.Scan(ctx, root, adocOpts)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, chk.checked)
	})
}
