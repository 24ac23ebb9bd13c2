package render

import (
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/state"
)

// FieldView is the render-ready projection of one form control.
type FieldView struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Value   string `json:"value"`
	Error   string `json:"error,omitempty"`
	Checked bool   `json:"checked,omitempty"`
}

// OptionView is one entry of the size select.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FormView is the order form projected from a store snapshot. Banner texts
// are sanitized before they land here.
type FormView struct {
	Action          string       `json:"action"`
	ValidateURL     string       `json:"validate_url"`
	FullName        FieldView    `json:"full_name"`
	Size            FieldView    `json:"size"`
	SizePlaceholder string       `json:"size_placeholder"`
	SizeOptions     []OptionView `json:"size_options"`
	Toppings        []FieldView  `json:"toppings"`
	Submittable     bool         `json:"submittable"`
	Success         string       `json:"success,omitempty"`
	Failure         string       `json:"failure,omitempty"`
}

// ViewOptions tunes NewFormView.
type ViewOptions struct {
	Action      string
	ValidateURL string
}

// NewFormView builds the form projection for snap using the catalog of s.
func NewFormView(s *schema.Schema, snap state.Snapshot, opts ViewOptions) FormView {
	if opts.Action == "" {
		opts.Action = "/order"
	}
	if opts.ValidateURL == "" {
		opts.ValidateURL = opts.Action + "/validate"
	}

	view := FormView{
		Action:      opts.Action,
		ValidateURL: opts.ValidateURL,
		FullName: FieldView{
			Key:   model.FieldFullName,
			Label: "Full Name",
			Value: snap.Values.FullName,
			Error: snap.Errors.Get(model.FieldFullName),
		},
		Size: FieldView{
			Key:   model.FieldSize,
			Label: "Size",
			Value: string(snap.Values.Size),
			Error: snap.Errors.Get(model.FieldSize),
		},
		SizePlaceholder: s.SizePlaceholder(),
		Submittable:     snap.Submittable,
		Success:         SanitizeFeedback(snap.Feedback.Success),
		Failure:         SanitizeFeedback(snap.Feedback.Failure),
	}

	for _, opt := range s.Sizes() {
		view.SizeOptions = append(view.SizeOptions, OptionView{
			Value:    string(opt.Value),
			Label:    opt.Label,
			Selected: opt.Value == snap.Values.Size,
		})
	}

	for _, topping := range snap.Values.Toppings {
		key := model.ToppingKey(topping.ID)
		view.Toppings = append(view.Toppings, FieldView{
			Key:     key,
			Label:   topping.Text,
			Value:   topping.ID,
			Error:   snap.Errors.Get(key),
			Checked: topping.Selected,
		})
	}

	return view
}
