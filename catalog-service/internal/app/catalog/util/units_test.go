package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnit_Mass(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"grams compact", "60g", "60 g"},
		{"grams with space", "60 g", "60 g"},
		{"grams word", "60 grams", "60 g"},
		{"gram singular", "1 gram", "1 g"},
		{"kilogram compact", "1kg", "1000 g"},
		{"kilogram word", "1 kilogram", "1000 g"},
		{"kilo word", "1 kilo", "1000 g"},
		{"two kilos", "2kg", "2000 g"},
		{"uppercase", "1KG", "1000 g"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeUnit(tt.input))
		})
	}
}

func TestNormalizeUnit_Volume(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"liter compact", "1l", "1000 ml"},
		{"liter word", "1 liter", "1000 ml"},
		{"litre word", "1 litre", "1000 ml"},
		{"milliliters pass through", "1000ml", "1000 ml"},
		{"half liter", "500ml", "500 ml"},
		{"uppercase ml", "500 ML", "500 ml"},
		{"two liters", "2 liters", "2000 ml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeUnit(tt.input))
		})
	}
}

func TestNormalizeUnit_ImperialUnits(t *testing.T) {
	// 1 oz = 28.35 g, 1 pint = 473.18 ml, 1 quart = 946.35 ml
	assert.Equal(t, "28.35 g", NormalizeUnit("1oz"))
	assert.Equal(t, "28.35 g", NormalizeUnit("1 ounce"))
	assert.Equal(t, "56.70 g", NormalizeUnit("2 ounces"))
	assert.Equal(t, "473.18 ml", NormalizeUnit("1 pint"))
	assert.Equal(t, "946.36 ml", NormalizeUnit("2 pints"))
	assert.Equal(t, "946.35 ml", NormalizeUnit("1 quart"))
}

func TestNormalizeUnit_EquivalentQuantitiesCompareEqual(t *testing.T) {
	// "1kg", "1000g" и "1 kilogram" - одна и та же фасовка
	assert.Equal(t, NormalizeUnit("1kg"), NormalizeUnit("1000g"))
	assert.Equal(t, NormalizeUnit("1kg"), NormalizeUnit("1 kilogram"))
	assert.Equal(t, NormalizeUnit("1L"), NormalizeUnit("1000ml"))
	assert.Equal(t, NormalizeUnit("1 litre"), NormalizeUnit("1 liter"))
}

func TestNormalizeUnit_Idempotence(t *testing.T) {
	inputs := []string{
		"1kg", "1000g", "1 kilogram", "60g", "1L", "500ml", "250ml",
		"1oz", "2 ounces", "1 pint", "1 quart", "dozen", "6 pack", "",
	}

	for _, input := range inputs {
		once := NormalizeUnit(input)
		assert.Equal(t, once, NormalizeUnit(once), "normalize(normalize(%q)) must equal normalize(%q)", input, input)
	}
}

func TestNormalizeUnit_EdgeCases(t *testing.T) {
	// Пустой вход - пустой канонический вид
	assert.Equal(t, "", NormalizeUnit(""))

	// Неизвестный формат возвращается trimmed lowercase
	assert.Equal(t, "dozen", NormalizeUnit("  Dozen  "))
	assert.Equal(t, "6 pack", NormalizeUnit("6 Pack"))

	// Десятичные значения не попадают под числовые шаблоны и проходят как есть
	assert.Equal(t, "1.5kg", NormalizeUnit("1.5KG"))
}
