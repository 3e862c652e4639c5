package util

import (
	"regexp"
	"strconv"
	"strings"
)

// Единицы измерения приходят от пользователей свободным текстом ("1kg",
// "1000g", "1 kilogram"). Нормализуем их в канонический вид при записи,
// чтобы уникальность (supermarket, brandProduct, unit) и фильтр по unit
// сравнивали эквивалентные фасовки как равные.
//
// Канонические формы: масса в граммах ("<N> g"), объем в миллилитрах ("<N> ml")

var (
	gramsPattern  = regexp.MustCompile(`^(\d+)\s?(grams?|g)$`)
	kiloPattern   = regexp.MustCompile(`^(\d+)\s?(kilograms?|kilos?|kg)$`)
	volumePattern = regexp.MustCompile(`^(\d+)\s?(liters?|litres?|l|ml)$`)
	ouncePattern  = regexp.MustCompile(`^(\d+)\s?(ounces?|oz)$`)
	pintPattern   = regexp.MustCompile(`^(\d+)\s?(pints?)$`)
	quartPattern  = regexp.MustCompile(`^(\d+)\s?(quarts?)$`)
)

// Таблица прямых соответствий для стандартных фасовок,
// которые не попали под регулярные выражения
var unitMappings = map[string]string{
	"1l":         "1000 ml",
	"1 liter":    "1000 ml",
	"1 litre":    "1000 ml",
	"1000ml":     "1000 ml",
	"500ml":      "500 ml",
	"250ml":      "250 ml",
	"1kg":        "1000 g",
	"1 kilogram": "1000 g",
	"1 kilo":     "1000 g",
	"500g":       "500 g",
	"100g":       "100 g",
	"60g":        "60 g",
	"1oz":        "28.35 g",
	"1 ounce":    "28.35 g",
	"1 pint":     "473.18 ml",
	"1 quart":    "946.35 ml",
}

// NormalizeUnit приводит строку единицы измерения к каноническому виду.
// Пустой вход дает пустую строку - решение, считать ли это ошибкой,
// остается за вызывающим. Функция идемпотентна: канонический вывод
// ("1000 g", "500 ml") нормализуется сам в себя.
func NormalizeUnit(inputUnit string) string {
	if inputUnit == "" {
		return ""
	}

	normalized := strings.ToLower(strings.TrimSpace(inputUnit))

	// Масса в граммах: "60 grams", "60g", "60 g"
	if m := gramsPattern.FindStringSubmatch(normalized); m != nil {
		return m[1] + " g"
	}

	// Килограммы конвертируются в граммы: "1 kilo", "1kg" -> "1000 g"
	if m := kiloPattern.FindStringSubmatch(normalized); m != nil {
		value, _ := strconv.Atoi(m[1])
		return strconv.Itoa(value*1000) + " g"
	}

	// Объем: миллилитры проходят как есть, литры конвертируются
	if m := volumePattern.FindStringSubmatch(normalized); m != nil {
		if strings.HasSuffix(normalized, "ml") {
			return m[1] + " ml"
		}
		value, _ := strconv.Atoi(m[1])
		return strconv.Itoa(value*1000) + " ml"
	}

	// Унции в граммы: 1 oz = 28.35 g
	if m := ouncePattern.FindStringSubmatch(normalized); m != nil {
		value, _ := strconv.Atoi(m[1])
		return strconv.FormatFloat(float64(value)*28.35, 'f', 2, 64) + " g"
	}

	// Пинты в миллилитры: 1 pint = 473.18 ml
	if m := pintPattern.FindStringSubmatch(normalized); m != nil {
		value, _ := strconv.Atoi(m[1])
		return strconv.FormatFloat(float64(value)*473.18, 'f', 2, 64) + " ml"
	}

	// Кварты в миллилитры: 1 quart = 946.35 ml
	if m := quartPattern.FindStringSubmatch(normalized); m != nil {
		value, _ := strconv.Atoi(m[1])
		return strconv.FormatFloat(float64(value)*946.35, 'f', 2, 64) + " ml"
	}

	if mapped, ok := unitMappings[normalized]; ok {
		return mapped
	}

	// Неизвестный формат возвращаем как есть (lowercase, без пробелов по краям)
	return normalized
}
