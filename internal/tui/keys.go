package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal  = "global"
	scopeCanvas  = "canvas"
	scopeEdit    = "edit"
	scopePrompt  = "prompt"
	scopeLibrary = "library"
)

const (
	actionQuit          Action = "quit"
	actionNextEntity    Action = "next_entity"
	actionPrevEntity    Action = "prev_entity"
	actionNudgeUp       Action = "nudge_up"
	actionNudgeDown     Action = "nudge_down"
	actionNudgeLeft     Action = "nudge_left"
	actionNudgeRight    Action = "nudge_right"
	actionNextField     Action = "next_field"
	actionPrevField     Action = "prev_field"
	actionEdit          Action = "edit"
	actionClearSelect   Action = "clear_selection"
	actionGenerateText  Action = "generate_text"
	actionGenerateImage Action = "generate_image"
	actionScale         Action = "scale"
	actionSave          Action = "save"
	actionOpen          Action = "open"
	actionImport        Action = "import"
	actionExport        Action = "export"
	actionSample        Action = "sample"
	actionToggleSnap    Action = "toggle_snap"
	actionConfirm       Action = "confirm"
	actionCancel        Action = "cancel"
	actionDelete        Action = "delete"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopeCanvas, actionNextEntity, []string{"tab"}, "next")
	reg(scopeCanvas, actionPrevEntity, []string{"shift+tab"}, "prev")
	reg(scopeCanvas, actionNudgeUp, []string{"up"}, "move")
	reg(scopeCanvas, actionNudgeDown, []string{"down"}, "move")
	reg(scopeCanvas, actionNudgeLeft, []string{"left"}, "move")
	reg(scopeCanvas, actionNudgeRight, []string{"right"}, "move")
	reg(scopeCanvas, actionNextField, []string{"]"}, "field")
	reg(scopeCanvas, actionPrevField, []string{"["}, "field")
	reg(scopeCanvas, actionEdit, []string{"e", "enter"}, "edit")
	reg(scopeCanvas, actionClearSelect, []string{"esc"}, "deselect")
	reg(scopeCanvas, actionGenerateText, []string{"g"}, "generate")
	reg(scopeCanvas, actionGenerateImage, []string{"i"}, "from image")
	reg(scopeCanvas, actionScale, []string{"s"}, "scale")
	reg(scopeCanvas, actionSave, []string{"w"}, "save")
	reg(scopeCanvas, actionOpen, []string{"o"}, "open")
	reg(scopeCanvas, actionImport, []string{"l"}, "load json")
	reg(scopeCanvas, actionExport, []string{"x"}, "export")
	reg(scopeCanvas, actionSample, []string{"m"}, "sample")
	reg(scopeCanvas, actionToggleSnap, []string{"n"}, "snap")
	reg(scopeCanvas, actionQuit, []string{"q"}, "quit")

	reg(scopeEdit, actionConfirm, []string{"enter"}, "apply")
	reg(scopeEdit, actionCancel, []string{"esc"}, "cancel")

	reg(scopePrompt, actionConfirm, []string{"enter"}, "ok")
	reg(scopePrompt, actionCancel, []string{"esc"}, "cancel")

	reg(scopeLibrary, actionConfirm, []string{"enter"}, "open")
	reg(scopeLibrary, actionDelete, []string{"d"}, "delete")
	reg(scopeLibrary, actionCancel, []string{"esc"}, "close")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup finds the binding for keyName in scope, then in the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

// HelpBindings returns the scope's bindings for bubbles/help. Bindings that
// share a help label are merged so the four nudge keys show once.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	index := map[string]int{}
	for _, b := range items {
		if i, ok := index[b.Help]; ok {
			keys := append(append([]string(nil), out[i].Keys()...), b.Keys...)
			out[i] = key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKeys(keys), b.Help))
			continue
		}
		index[b.Help] = len(out)
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func helpKeys(keys []string) string {
	arrows := map[string]string{"up": "↑", "down": "↓", "left": "←", "right": "→"}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if a, ok := arrows[k]; ok {
			k = a
		}
		parts = append(parts, k)
	}
	sep := "/"
	if len(parts) == 4 {
		sep = ""
	}
	return strings.Join(parts, sep)
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	return s
}
