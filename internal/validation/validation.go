package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"restaurant-ordering/internal/model"

	"github.com/go-playground/validator/v10"
)

// Validator checks request payloads against their struct tag schemas and
// turns them into typed, validated inputs.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom tags used by the request models.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// nonblank rejects empty and whitespace-only strings
	if err := v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("register nonblank validation: %v", err))
	}

	return &Validator{validate: v}
}

// CreateOrder validates an order request and returns its draft. Lines that
// reference the same menu item are merged by summing their quantities, and
// the merged quantity obeys the same upper bound as a single line. Menu item
// ids are compared case-insensitively, as the catalog does.
func (v *Validator) CreateOrder(req *model.CreateOrderRequest) (*model.OrderDraft, error) {
	if req == nil {
		return nil, model.NewInvalidInput("request body is required")
	}
	if err := v.check(req); err != nil {
		return nil, err
	}

	draft := &model.OrderDraft{
		RecipientName:  strings.TrimSpace(req.RecipientName),
		RecipientPhone: req.RecipientPhone,
		Lines:          make([]model.OrderLineRequest, 0, len(req.MenuItems)),
	}

	index := make(map[string]int, len(req.MenuItems))
	for _, line := range req.MenuItems {
		id := strings.ToLower(strings.TrimSpace(line.MenuItemID))
		if i, ok := index[id]; ok {
			draft.Lines[i].Quantity += line.Quantity
			if draft.Lines[i].Quantity > model.MaxLineQuantity {
				return nil, model.NewInvalidInput(fmt.Sprintf("menuItems: total quantity for %s must be at most %d", id, model.MaxLineQuantity))
			}
			continue
		}
		index[id] = len(draft.Lines)
		draft.Lines = append(draft.Lines, model.OrderLineRequest{MenuItemID: id, Quantity: line.Quantity})
	}

	return draft, nil
}

// CreateMenuItem validates a new menu item.
func (v *Validator) CreateMenuItem(req *model.CreateMenuItemRequest) (*model.MenuItemInput, error) {
	if req == nil {
		return nil, model.NewInvalidInput("request body is required")
	}
	if err := v.check(req); err != nil {
		return nil, err
	}

	return &model.MenuItemInput{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		Price:       *req.Price,
		ImageURL:    req.ImageURL,
	}, nil
}

// UpdateMenuItem validates a partial menu item update.
func (v *Validator) UpdateMenuItem(req *model.UpdateMenuItemRequest) error {
	if req == nil || req.IsEmpty() {
		return model.NewInvalidInput("at least one field must be provided")
	}
	if err := v.check(req); err != nil {
		return err
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if req.Category != nil {
		trimmed := strings.TrimSpace(*req.Category)
		req.Category = &trimmed
	}
	return nil
}

// MenuItemInput validates a menu item decoded from a seed file.
func (v *Validator) MenuItemInput(in *model.MenuItemInput) error {
	price := in.Price
	return v.check(&model.CreateMenuItemRequest{
		Name:     in.Name,
		Price:    &price,
		Category: in.Category,
	})
}

func (v *Validator) check(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return model.NewInvalidInput(err.Error())
	}

	messages := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		messages[i] = describe(fe)
	}
	return model.NewInvalidInput(strings.Join(messages, "; "))
}

// describe renders a field error as "<path>: <reason>".
func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}

	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "nonblank":
		reason = "must not be blank"
	case "min":
		if fe.Kind() == reflect.Slice {
			reason = fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		} else {
			reason = fmt.Sprintf("must be at least %s", fe.Param())
		}
	case "len":
		reason = fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "number":
		reason = "must contain only digits"
	case "max":
		reason = fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		reason = fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		reason = fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		reason = fmt.Sprintf("failed %s validation", fe.Tag())
	}

	return path + ": " + reason
}
