package model

import (
	"fmt"
	"strconv"
)

// Selection is a value the user may or may not have picked.
type Selection[T any] struct {
	value T
	ok    bool
}

func Selected[T any](v T) Selection[T] { return Selection[T]{value: v, ok: true} }

func NotSelected[T any]() Selection[T] { return Selection[T]{} }

func (s Selection[T]) Get() (T, bool) { return s.value, s.ok }

func (s Selection[T]) IsSelected() bool { return s.ok }

type installmentKind int

const (
	installmentsNotSelected installmentKind = iota
	installmentsCount
	installmentsAll
)

// InstallmentChoice is either nothing, one installment count, or every count.
type InstallmentChoice struct {
	kind  installmentKind
	count int
}

func NoInstallments() InstallmentChoice { return InstallmentChoice{} }

func Installments(n int) InstallmentChoice {
	return InstallmentChoice{kind: installmentsCount, count: n}
}

func AllInstallments() InstallmentChoice { return InstallmentChoice{kind: installmentsAll} }

func (c InstallmentChoice) IsAll() bool { return c.kind == installmentsAll }

// Count returns the chosen count as a selection; "all" is not a count.
func (c InstallmentChoice) Count() Selection[int] {
	if c.kind != installmentsCount {
		return NotSelected[int]()
	}
	return Selected(c.count)
}

func (c InstallmentChoice) String() string {
	switch c.kind {
	case installmentsCount:
		return strconv.Itoa(c.count)
	case installmentsAll:
		return "all"
	}
	return ""
}

// ParseInstallmentChoice accepts "", "all" or a base-10 integer.
func ParseInstallmentChoice(s string) (InstallmentChoice, error) {
	switch s {
	case "":
		return NoInstallments(), nil
	case "all":
		return AllInstallments(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return InstallmentChoice{}, fmt.Errorf("installments must be an integer or \"all\": %q", s)
	}
	return Installments(n), nil
}

type SimulationRequest struct {
	Amount       Selection[float64]
	Brand        Selection[string]
	Installments InstallmentChoice
	// Provider narrows the results to one provider; unselected means all.
	Provider Selection[string]
}
