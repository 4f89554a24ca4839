package client

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/claralima1/Planner/internal/model"
)

// Form limits enforced before a study is sent. The service itself accepts
// any decodable payload.
const (
	MinTitleLength       = 3
	MaxDurationHours     = 24.0
	MaxDescriptionLength = 500
)

// SuggestedCategories are offered to users; any free text is accepted.
var SuggestedCategories = []string{
	"Frontend", "Backend", "Mobile", "DevOps", "Banco de Dados",
	"UI/UX", "Testes", "Segurança", "Outro",
}

// SuggestedDurations are quick-pick values in hours.
var SuggestedDurations = []float64{0.5, 1, 1.5, 2, 3}

// Priorities lists the accepted priority values.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ValidationError names the offending field and carries a user-facing
// message. It matches model.ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return model.ErrValidation }

// ValidateInput applies the create form rules.
func ValidateInput(in StudyInput) error {
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if err := validateDuration(in.Duration); err != nil {
		return err
	}
	return validateOptional(in.Description, in.Priority)
}

// ValidatePatch applies the same rules to the fields a patch supplies.
func ValidatePatch(p StudyPatch) error {
	if p.ID <= 0 {
		return &ValidationError{Field: "id", Message: "O id do estudo é obrigatório"}
	}
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Duration != nil {
		if err := validateDuration(*p.Duration); err != nil {
			return err
		}
	}
	return validateOptional(p.Description, p.Priority)
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "titulo", Message: "O título é obrigatório"}
	}
	if utf8.RuneCountInString(title) < MinTitleLength {
		return &ValidationError{Field: "titulo", Message: fmt.Sprintf("O título deve ter pelo menos %d caracteres", MinTitleLength)}
	}
	return nil
}

func validateDuration(d float64) error {
	if d <= 0 {
		return &ValidationError{Field: "duracao", Message: "A duração deve ser maior que 0"}
	}
	if d > MaxDurationHours {
		return &ValidationError{Field: "duracao", Message: "A duração não pode ser maior que 24 horas"}
	}
	return nil
}

func validateOptional(desc *string, prio *Priority) error {
	if desc != nil && utf8.RuneCountInString(*desc) > MaxDescriptionLength {
		return &ValidationError{Field: "descricao", Message: fmt.Sprintf("A descrição deve ter no máximo %d caracteres", MaxDescriptionLength)}
	}
	if prio != nil && !prio.Valid() {
		return &ValidationError{Field: "prioridade", Message: fmt.Sprintf("Prioridade inválida: %q", string(*prio))}
	}
	return nil
}
