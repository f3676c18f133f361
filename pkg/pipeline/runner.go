package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/suechart/pkg/chart"
	"github.com/matzehuels/suechart/pkg/document"
	"github.com/matzehuels/suechart/pkg/errors"
	"github.com/matzehuels/suechart/pkg/layer"
	"github.com/matzehuels/suechart/pkg/link"
	"github.com/matzehuels/suechart/pkg/observability"
)

// Runner drives chart synchronization.
//
// The Runner holds no per-run state, so one Runner can serve many documents.
// A single document must not be synced by two runs at once.
type Runner struct {
	Renderer Renderer
	Prompter Prompter
	Logger   *log.Logger
}

// NewRunner creates a runner. Prompter may be nil when only linked layers
// are refreshed; a nil logger means log.Default().
func NewRunner(renderer Renderer, prompter Prompter, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Renderer: renderer,
		Prompter: prompter,
		Logger:   logger,
	}
}

// Plan is the outcome of Prepare: everything Fetch and Apply need.
type Plan struct {
	State State
	// Master is the placeholder that receives the chart.
	Master *document.Layer
	// OldSlave is the artwork being replaced; nil for a new chart.
	OldSlave *document.Layer
	// Config is the request, sized to Master's frame.
	Config chart.Config
}

// Result reports the outcome of a Sync.
type Result struct {
	State State
	// Slave is the inserted artwork; nil on failure.
	Slave *document.Layer
	// Err is the failure already shown to the user, if any.
	Err error
}

// Prepare inspects the selection and builds the request. It prompts the user
// when the selection is a plain layer.
func (r *Runner) Prepare(ctx context.Context, host Host) (*Plan, error) {
	sel := host.Selection()
	state := Classify(sel)

	plan := &Plan{State: state}
	switch state {
	case NoSelection, MultiSelection:
		return plan, errors.New(errors.ErrCodeSelection, MsgSelectRectangle)

	case SingleUnlinked:
		cfg, err := r.promptConfig(ctx)
		if err != nil {
			return plan, err
		}
		plan.Master = sel[0]
		plan.Config = cfg

	case SingleLinkedMaster:
		pair, err := link.Resolve(host, sel[0])
		if err != nil {
			return plan, err
		}
		plan.Master, plan.OldSlave, plan.Config = pair.Master, pair.Slave, pair.Config

	case SingleLinkedSlave:
		slave := sel[0]
		master, ok := link.FindMaster(host.Layers(), slave.ID)
		if !ok {
			return plan, errors.New(errors.ErrCodeLinkBroken, "Placeholder of %q got lost.", link.DisplayName(slave.Name))
		}
		pair, err := link.Resolve(host, master)
		if err != nil {
			return plan, err
		}
		plan.Master, plan.OldSlave, plan.Config = pair.Master, pair.Slave, pair.Config
	}

	// The placeholder may have been resized since the last render.
	plan.Config = plan.Config.WithSize(plan.Master.Frame.Width, plan.Master.Frame.Height)
	r.Logger.Debug("prepared chart",
		"state", state,
		"layer", link.DisplayName(plan.Master.Name),
		"type", plan.Config.ChartType,
		"rows", len(plan.Config.Data))
	return plan, nil
}

// promptConfig asks for chart type and data. Dismissing either prompt ends
// the run at once.
func (r *Runner) promptConfig(ctx context.Context) (chart.Config, error) {
	if r.Prompter == nil {
		return chart.Config{}, errors.New(errors.ErrCodeInternal, "no prompter configured for new charts")
	}

	t, ok, err := r.Prompter.SelectChartType(ctx, MsgChooseType, chart.Catalog())
	if err != nil {
		return chart.Config{}, err
	}
	if !ok {
		return chart.Config{}, errors.New(errors.ErrCodeCancelled, MsgBye)
	}
	if _, err := chart.ParseType(string(t)); err != nil {
		return chart.Config{}, err
	}

	text, ok, err := r.Prompter.EnterData(ctx, MsgEnterData, chart.ExampleTable)
	if err != nil {
		return chart.Config{}, err
	}
	if !ok {
		return chart.Config{}, errors.New(errors.ErrCodeCancelled, MsgBye)
	}

	data, err := chart.ParseTable(text)
	if err != nil {
		return chart.Config{}, err
	}
	return chart.New(t, data), nil
}

// Fetch renders the plan's configuration. It does not touch the document.
func (r *Runner) Fetch(ctx context.Context, plan *Plan) (string, error) {
	if r.Renderer == nil {
		return "", errors.New(errors.ErrCodeInternal, "no renderer configured")
	}
	cfg := plan.Config
	hooks := observability.Sync()
	hooks.OnFetchStart(ctx, cfg.Style, string(cfg.ChartType))
	start := time.Now()
	svg, err := r.Renderer.FetchChart(ctx, cfg)
	hooks.OnFetchComplete(ctx, cfg.Style, string(cfg.ChartType), time.Since(start), err)
	return svg, err
}

// Apply inserts svg as the plan's new artwork and re-links the pair. The
// previous artwork is removed only once the new one is in place.
func (r *Runner) Apply(ctx context.Context, host Host, plan *Plan, svg string) (*document.Layer, error) {
	if _, ok := host.LayerByID(plan.Master.ID); !ok {
		return nil, errors.New(errors.ErrCodeLinkBroken, "Placeholder %q was removed.", link.DisplayName(plan.Master.Name))
	}

	tree, err := layer.ImportSVG(svg)
	if err != nil {
		return nil, err
	}
	before := layer.Count(tree)
	flat, ok := layer.Flatten(tree)
	if !ok {
		// Nothing drawable. The root stays so the pair is still linked.
		flat = tree.Clone()
		flat.Children = nil
	}
	observability.Sync().OnImport(ctx, before, layer.Count(flat))

	display := link.DisplayName(plan.Master.Name)
	slaveName, err := link.EncodeSlave(display, plan.Config)
	if err != nil {
		return nil, err
	}
	slave := &document.Layer{
		ID:      document.NewID(),
		Name:    slaveName,
		Type:    document.TypeArtwork,
		Frame:   layer.Place(flat, plan.Master.Frame),
		Artwork: flat,
	}
	if err := host.AddLayer(slave); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "insert chart artwork")
	}
	plan.Master.Name = link.EncodeMaster(display, slave.ID)

	if plan.OldSlave != nil {
		if err := host.RemoveLayer(plan.OldSlave.ID); err != nil {
			if !stderrors.Is(err, document.ErrNotFound) {
				return slave, errors.Wrap(errors.ErrCodeInternal, err, "remove previous chart artwork")
			}
			r.Logger.Warn("previous artwork already gone", "id", plan.OldSlave.ID)
		}
	}

	host.ShowMessage(MsgInserted)
	r.Logger.Info("chart inserted",
		"layer", display,
		"type", plan.Config.ChartType,
		"nodes", layer.Count(flat))
	return slave, nil
}

// Sync runs Prepare, Fetch and Apply. Any failure is shown to the user as a
// single notice and returned in the result; the document is only changed
// when every stage succeeds.
func (r *Runner) Sync(ctx context.Context, host Host) *Result {
	start := time.Now()
	res := &Result{State: Classify(host.Selection())}
	hooks := observability.Sync()
	hooks.OnSyncStart(ctx, res.State.String())
	defer func() {
		hooks.OnSyncComplete(ctx, res.State.String(), time.Since(start), res.Err)
	}()

	plan, err := r.Prepare(ctx, host)
	if err != nil {
		return r.fail(host, res, err)
	}

	svg, err := r.Fetch(ctx, plan)
	if err != nil {
		return r.fail(host, res, err)
	}

	slave, err := r.Apply(ctx, host, plan, svg)
	res.Slave = slave
	if err != nil {
		return r.fail(host, res, err)
	}
	return res
}

func (r *Runner) fail(host Host, res *Result, err error) *Result {
	res.Err = err
	host.ShowMessage(errors.UserMessage(err))
	switch errors.GetCode(err) {
	case errors.ErrCodeSelection, errors.ErrCodeCancelled:
		r.Logger.Debug("sync ended", "state", res.State, "reason", errors.UserMessage(err))
	default:
		r.Logger.Warn("sync failed", "state", res.State, "err", err)
	}
	return res
}

// Unlink removes the chart link from the selected placeholder or artwork.
// The artwork, if still present, is deleted and the placeholder keeps its
// display name, so the next Sync starts over with a fresh prompt. This is
// the way out of a broken link.
func (r *Runner) Unlink(host Host) error {
	err := r.unlink(host)
	if err != nil {
		host.ShowMessage(errors.UserMessage(err))
		return err
	}
	host.ShowMessage(MsgUnlinked)
	return nil
}

func (r *Runner) unlink(host Host) error {
	sel := host.Selection()
	state := Classify(sel)

	var master, slave *document.Layer
	switch state {
	case SingleLinkedMaster:
		master = sel[0]
		if l, ok := host.LayerByID(link.Decode(master.Name).Payload); ok && link.Decode(l.Name).Role == link.RoleSlave {
			slave = l
		}
	case SingleLinkedSlave:
		slave = sel[0]
		master, _ = link.FindMaster(host.Layers(), slave.ID)
	case SingleUnlinked:
		return errors.New(errors.ErrCodeSelection, "Layer %q is not linked to a chart.", sel[0].Name)
	default:
		return errors.New(errors.ErrCodeSelection, MsgSelectRectangle)
	}

	if master != nil {
		master.Name = link.Unlink(master.Name)
	}
	if slave != nil {
		if err := host.RemoveLayer(slave.ID); err != nil && !stderrors.Is(err, document.ErrNotFound) {
			return errors.Wrap(errors.ErrCodeInternal, err, "remove chart artwork")
		}
	}
	r.Logger.Info("chart unlinked", "state", state)
	return nil
}
