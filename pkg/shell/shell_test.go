package shell

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	wmenu "github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/mchmarny/menubridge/pkg/config"
	"github.com/mchmarny/menubridge/pkg/menu"
	"github.com/mchmarny/menubridge/pkg/metric"
	"github.com/mchmarny/menubridge/pkg/router"
)

type emission struct {
	ctx     context.Context
	event   string
	payload []any
}

type recorder struct {
	emitted []emission
	quits   int
}

func (r *recorder) emit(ctx context.Context, event string, payload ...any) {
	r.emitted = append(r.emitted, emission{ctx: ctx, event: event, payload: payload})
}

func (r *recorder) quit(context.Context) {
	r.quits++
}

func newTestApp(t *testing.T, opts ...Option) (*App, *recorder) {
	t.Helper()

	cfg := config.Default()
	cfg.Info.ProductName = "Demo"

	tree, err := menu.Build(cfg.AppName(), "dev")
	require.NoError(t, err)

	rec := &recorder{}
	opts = append([]Option{WithEmitFunc(rec.emit), WithQuitFunc(rec.quit)}, opts...)

	a, err := New(cfg, tree, fstest.MapFS{"index.html": {Data: []byte("<html></html>")}}, opts...)
	require.NoError(t, err)

	return a, rec
}

func findItem(t *testing.T, bar *wmenu.Menu, sub, label string) *wmenu.MenuItem {
	t.Helper()
	for _, top := range bar.Items {
		if top.Label != sub {
			continue
		}
		for _, item := range top.SubMenu.Items {
			if item.Label == label {
				return item
			}
		}
	}
	t.Fatalf("menu item %s > %s not found", sub, label)
	return nil
}

func TestTranslateStructure(t *testing.T) {
	tree, err := menu.Build("", "")
	require.NoError(t, err)

	bar := Translate(tree, nil, nil)

	require.Len(t, bar.Items, 2)
	assert.Equal(t, "App", bar.Items[0].Label)
	assert.Equal(t, wmenu.SubmenuType, bar.Items[0].Type)
	assert.Equal(t, "File", bar.Items[1].Label)

	app := bar.Items[0].SubMenu.Items
	require.Len(t, app, 2)
	assert.Equal(t, "About", app[0].Label)
	assert.Nil(t, app[0].Accelerator)
	assert.Equal(t, "Quit", app[1].Label)
	assert.Equal(t, keys.CmdOrCtrl("q"), app[1].Accelerator)

	file := bar.Items[1].SubMenu.Items
	require.Len(t, file, 1)
	assert.Equal(t, "Open File", file[0].Label)
}

func TestTranslateCallbacks(t *testing.T) {
	tree, err := menu.Build("Demo", "")
	require.NoError(t, err)

	var (
		activated []string
		quits     int
	)
	bar := Translate(tree, func() { quits++ }, func(id string) { activated = append(activated, id) })

	for _, item := range []*wmenu.MenuItem{
		findItem(t, bar, "Demo", "About"),
		findItem(t, bar, menu.FileMenuLabel, "Open File"),
		findItem(t, bar, "Demo", "Quit"),
	} {
		item.Click(&wmenu.CallbackData{MenuItem: item})
	}

	assert.Equal(t, []string{menu.IDAbout, menu.IDOpenFile}, activated)
	assert.Equal(t, 1, quits)
}

func TestAccelerator(t *testing.T) {
	assert.Nil(t, accelerator(""))
	assert.Nil(t, accelerator("Hyper+K"))
	assert.Equal(t, keys.Key("f5"), accelerator("F5"))
	assert.Equal(t, keys.OptionOrAlt("x"), accelerator("Alt+X"))
	assert.Equal(t, keys.Shift("n"), accelerator("Shift+N"))
	assert.Equal(t, keys.Control("c"), accelerator("Ctrl+C"))
}

func TestOpenFileForwardedAfterStartup(t *testing.T) {
	a, rec := newTestApp(t)

	opts, err := a.Options()
	require.NoError(t, err)
	assert.Equal(t, "Demo", opts.Title)
	require.NotNil(t, opts.Menu)
	require.Len(t, opts.Menu.Items, 2)
	assert.Equal(t, opts.Title, opts.Menu.Items[0].Label)

	open := findItem(t, opts.Menu, menu.FileMenuLabel, "Open File")

	// no main window yet: silently dropped
	open.Click(&wmenu.CallbackData{MenuItem: open})
	assert.Empty(t, rec.emitted)

	ctx := context.WithValue(context.Background(), struct{}{}, "wails")
	opts.OnStartup(ctx)

	open.Click(&wmenu.CallbackData{MenuItem: open})
	require.Len(t, rec.emitted, 1)
	assert.Equal(t, router.EventFileOpen, rec.emitted[0].event)
	assert.Empty(t, rec.emitted[0].payload)
	assert.Equal(t, ctx, rec.emitted[0].ctx)

	about := findItem(t, opts.Menu, "Demo", "About")
	about.Click(&wmenu.CallbackData{MenuItem: about})
	assert.Len(t, rec.emitted, 1)

	opts.OnShutdown(ctx)
	open.Click(&wmenu.CallbackData{MenuItem: open})
	assert.Len(t, rec.emitted, 1)
}

func TestQuitBypassesRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := metric.NewActivationCounter(reg)
	a, rec := newTestApp(t, WithCounter(counter))

	opts, err := a.Options()
	require.NoError(t, err)

	quit := findItem(t, opts.Menu, "Demo", "Quit")

	// before startup there is no toolkit context to quit with
	quit.Click(&wmenu.CallbackData{MenuItem: quit})
	assert.Equal(t, 0, rec.quits)

	opts.OnStartup(context.Background())
	quit.Click(&wmenu.CallbackData{MenuItem: quit})
	assert.Equal(t, 1, rec.quits)
	assert.Equal(t, 0, testutil.CollectAndCount(counter.Vec()))
}

func TestMenuInstalledOnce(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := a.Options()
	require.NoError(t, err)

	_, err = a.Options()
	assert.ErrorIs(t, err, ErrAlreadyInstalled)
}

func TestStartupHooks(t *testing.T) {
	var got context.Context
	a, _ := newTestApp(t, WithStartupHook(func(ctx context.Context) { got = ctx }))

	opts, err := a.Options()
	require.NoError(t, err)

	ctx := context.Background()
	opts.OnStartup(ctx)
	assert.Equal(t, ctx, got)

	_, ok := a.Windows().Window(router.MainWindow)
	assert.True(t, ok)
}

func TestNewRequiresInputs(t *testing.T) {
	tree, err := menu.Build("", "")
	require.NoError(t, err)

	_, err = New(nil, tree, nil)
	assert.Error(t, err)

	_, err = New(config.Default(), nil, nil)
	assert.Error(t, err)
}

func TestInvalidMenuFailsInstall(t *testing.T) {
	tree := &menu.Menu{Submenus: []menu.Submenu{
		{Label: "A", Items: []menu.Item{{ID: "x", Label: "X"}, {ID: "x", Label: "Y"}}},
	}}

	a, err := New(config.Default(), tree, nil)
	require.NoError(t, err)

	_, err = a.Options()
	assert.ErrorIs(t, err, menu.ErrDuplicateID)
}
