package hasher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/xlgraph/internal/adapters/hasher"
	"go.trai.ch/xlgraph/internal/core/domain"
)

func cell(ref, formula string) domain.Cell {
	return domain.Cell{Reference: domain.MustCellReference(ref), Formula: formula}
}

func TestHasher_HashFormulas(t *testing.T) {
	t.Parallel()

	h := hasher.New()
	base := []domain.Cell{
		cell("Sheet1!B1", "A1*2"),
		cell("Sheet1!C1", "B1+Sheet2!D1"),
	}
	sum := h.HashFormulas(base)
	assert.Len(t, sum, 16)

	t.Run("order independent", func(t *testing.T) {
		t.Parallel()
		reversed := []domain.Cell{base[1], base[0]}
		assert.Equal(t, sum, h.HashFormulas(reversed))
	})

	t.Run("ignores leading equals and reference case", func(t *testing.T) {
		t.Parallel()
		variant := []domain.Cell{
			cell("SHEET1!b1", "=A1*2"),
			cell("Sheet1!C1", "B1+Sheet2!D1"),
		}
		assert.Equal(t, sum, h.HashFormulas(variant))
	})

	t.Run("constants do not contribute", func(t *testing.T) {
		t.Parallel()
		withConstant := append([]domain.Cell{{Reference: domain.MustCellReference("Sheet1!A1"), Value: domain.NumberValue(5)}}, base...)
		assert.Equal(t, sum, h.HashFormulas(withConstant))
	})

	t.Run("formula edit with same count changes hash", func(t *testing.T) {
		t.Parallel()
		edited := []domain.Cell{
			cell("Sheet1!B1", "A1*3"),
			cell("Sheet1!C1", "B1+Sheet2!D1"),
		}
		assert.NotEqual(t, sum, h.HashFormulas(edited))
	})

	t.Run("moved formula changes hash", func(t *testing.T) {
		t.Parallel()
		moved := []domain.Cell{
			cell("Sheet1!B2", "A1*2"),
			cell("Sheet1!C1", "B1+Sheet2!D1"),
		}
		assert.NotEqual(t, sum, h.HashFormulas(moved))
	})
}
