package option

import "encoding/json"

// Method is the host-side callback an option triggers.
type Method string

// Action methods understood by the host.
const (
	MethodOpenURL      Method = "open_url"
	MethodRewriteQuery Method = "rewrite_query"
	MethodOpenSettings Method = "open_settings"
)

// Icon names. The host resolves them relative to its asset directory.
const (
	IconApp     = "app"
	IconError   = "error"
	IconGithub  = "github"
	IconDiscord = "discord"
	IconLogFile = "log_file"
)

// Action describes what happens when the user selects an option.
type Action struct {
	method     Method
	parameters []string
	dontHide   bool
}

// Method returns the callback name.
func (a Action) Method() Method { return a.method }

// Parameters returns the callback arguments.
func (a Action) Parameters() []string { return a.parameters }

// DontHide reports whether the host window stays open after the action.
func (a Action) DontHide() bool { return a.dontHide }

// OpenURL opens url in the browser.
func OpenURL(url string) *Action {
	return &Action{method: MethodOpenURL, parameters: []string{url}}
}

// RewriteQuery replaces the host query with query. The host window stays open.
func RewriteQuery(query string) *Action {
	return &Action{method: MethodRewriteQuery, parameters: []string{query}, dontHide: true}
}

// OpenSettings opens the host settings page for this plugin.
func OpenSettings() *Action {
	return &Action{method: MethodOpenSettings, parameters: []string{}}
}

// Option is a single renderable, actionable line item.
type Option struct {
	title    string
	subtitle string
	icon     string
	score    int
	action   *Action
	children []Option
}

// New creates an option with the default icon.
func New(title, subtitle string) Option {
	return Option{title: title, subtitle: subtitle, icon: IconApp}
}

// WithIcon returns a copy with a different icon.
func (o Option) WithIcon(icon string) Option {
	o.icon = icon
	return o
}

// WithScore returns a copy with a different score.
func (o Option) WithScore(score int) Option {
	o.score = score
	return o
}

// WithAction returns a copy that triggers a.
func (o Option) WithAction(a *Action) Option {
	o.action = a
	return o
}

// WithChildren returns a copy with context menu entries.
func (o Option) WithChildren(children ...Option) Option {
	o.children = append([]Option(nil), children...)
	return o
}

// Title returns the main line.
func (o Option) Title() string { return o.title }

// Subtitle returns the secondary line.
func (o Option) Subtitle() string { return o.subtitle }

// Icon returns the icon name.
func (o Option) Icon() string { return o.icon }

// IconPath returns the icon path sent to the host.
func (o Option) IconPath() string { return "Images/" + o.icon + ".png" }

// Score returns the tie-break priority (higher first).
func (o Option) Score() int { return o.score }

// Action returns the selection action, or nil.
func (o Option) Action() *Action { return o.action }

// Children returns the context menu entries.
func (o Option) Children() []Option { return o.children }

// URL builds an "Open <name>" link option.
func URL(name, url string) Option {
	return New("Open "+name, url).WithAction(OpenURL(url))
}

// WordNotFound is the static empty-result notice.
func WordNotFound() Option {
	return New("Word not found", "").WithIcon(IconError)
}

// Wire is the external serialization of an option.
type Wire struct {
	Title       string      `json:"Title"`
	SubTitle    string      `json:"SubTitle"`
	IcoPath     string      `json:"IcoPath"`
	ContextData []Wire      `json:"ContextData"`
	Score       int         `json:"score"`
	Action      *WireAction `json:"JsonRPCAction,omitempty"`
}

// WireAction is the external serialization of an action.
type WireAction struct {
	Method              string   `json:"method"`
	Parameters          []string `json:"parameters"`
	DontHideAfterAction bool     `json:"dontHideAfterAction"`
}

// ToWire converts the option tree to its external form.
func (o Option) ToWire() Wire {
	w := Wire{
		Title:       o.title,
		SubTitle:    o.subtitle,
		IcoPath:     o.IconPath(),
		ContextData: make([]Wire, 0, len(o.children)),
		Score:       o.score,
	}
	for _, c := range o.children {
		w.ContextData = append(w.ContextData, c.ToWire())
	}
	if o.action != nil {
		params := o.action.parameters
		if params == nil {
			params = []string{}
		}
		w.Action = &WireAction{
			Method:              string(o.action.method),
			Parameters:          params,
			DontHideAfterAction: o.action.dontHide,
		}
	}
	return w
}

// MarshalJSON implements json.Marshaler.
func (o Option) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.ToWire())
}

// FromWire rebuilds an option tree from its external form. Unknown icon paths
// fall back to the default icon.
func FromWire(w Wire) Option {
	o := Option{
		title:    w.Title,
		subtitle: w.SubTitle,
		icon:     iconFromPath(w.IcoPath),
		score:    w.Score,
	}
	for _, c := range w.ContextData {
		o.children = append(o.children, FromWire(c))
	}
	if w.Action != nil {
		o.action = &Action{
			method:     Method(w.Action.Method),
			parameters: w.Action.Parameters,
			dontHide:   w.Action.DontHideAfterAction,
		}
	}
	return o
}

// ToWireList converts a list of options.
func ToWireList(opts []Option) []Wire {
	out := make([]Wire, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.ToWire())
	}
	return out
}

func iconFromPath(p string) string {
	const prefix, suffix = "Images/", ".png"
	if len(p) > len(prefix)+len(suffix) && p[:len(prefix)] == prefix && p[len(p)-len(suffix):] == suffix {
		return p[len(prefix) : len(p)-len(suffix)]
	}
	return IconApp
}
