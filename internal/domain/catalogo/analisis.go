// Package catalogo contiene los catálogos fijos de análisis disponibles por
// tipo de muestra y los parámetros base del formulario de resultados.
package catalogo

import "github.com/aqualab/aqualab-api/internal/domain/entity"

// Categoria grupo de análisis dentro del catálogo.
type Categoria struct {
	Categoria string   `json:"categoria"`
	Analisis  []string `json:"analisis"`
}

// AnalisisAgua catálogo para muestras de agua.
var AnalisisAgua = []Categoria{
	{
		Categoria: "Metales",
		Analisis: []string{
			"Aluminio", "Arsénico", "Cadmio", "Cobre", "Cromo", "Hierro",
			"Manganeso", "Mercurio", "Molibdeno", "Níquel", "Plata", "Plomo", "Zinc",
		},
	},
	{
		Categoria: "Química General",
		Analisis: []string{
			"Carbono Orgánico Total (COT)", "Cloro residual", "Cloro Total",
			"Cloruros", "Conductividad", "Dureza Cálcica", "Dureza Magnésica",
			"Dureza Total", "Ortofosfatos", "Fósforo Total", "Nitratos",
			"Nitritos", "Nitrógeno amoniacal", "Nitrógeno total",
			"Oxígeno disuelto", "pH", "Potasio", "Sulfatos",
		},
	},
	{
		Categoria: "Físicos",
		Analisis: []string{
			"Color aparente", "Color real", "Sólidos sedimentables",
			"Sólidos suspendidos", "Sólidos Totales", "Turbiedad",
		},
	},
	{
		Categoria: "Otros",
		Analisis:  []string{"Bromo", "Cobalto", "Yodo"},
	},
}

// AnalisisSuelo catálogo para muestras de suelo.
var AnalisisSuelo = []Categoria{
	{
		Categoria: "Propiedades Físicas",
		Analisis:  []string{"pH", "Conductividad Eléctrica", "Humedad", "Sólidos Totales"},
	},
	{
		Categoria: "Propiedades Químicas",
		Analisis: []string{
			"Carbono orgánico", "Materia orgánica", "Fósforo total",
			"Acidez intercambiable", "Bases intercambiables",
		},
	},
	{
		Categoria: "Macronutrientes",
		Analisis:  []string{"Calcio", "Magnesio", "Potasio", "Sodio"},
	},
	{
		Categoria: "Micronutrientes",
		Analisis:  []string{"Cobre", "Zinc", "Hierro", "Manganeso", "Cadmio", "Mercurio"},
	},
}

// AnalisisPara devuelve el catálogo según el tipo de muestra; nil si el tipo
// no tiene catálogo.
func AnalisisPara(tipoMuestra string) []Categoria {
	switch tipoMuestra {
	case entity.TipoMuestraAgua:
		return AnalisisAgua
	case entity.TipoMuestraSuelo:
		return AnalisisSuelo
	}
	return nil
}

// EsAnalisisValido indica si el análisis pertenece al catálogo del tipo de muestra.
func EsAnalisisValido(tipoMuestra, analisis string) bool {
	for _, cat := range AnalisisPara(tipoMuestra) {
		for _, a := range cat.Analisis {
			if a == analisis {
				return true
			}
		}
	}
	return false
}

// ParametrosBase parámetros del formulario de resultados con su unidad por defecto.
var ParametrosBase = map[string]string{
	"pH":                 "mv",
	"turbidez":           "NTU",
	"oxigenoDisuelto":    "mg/L",
	"nitratos":           "mg/L",
	"solidosSuspendidos": "mg/L",
	"fosfatos":           "mg/k",
}

// UnidadPorDefecto devuelve la unidad base de un parámetro; cadena vacía si no
// es un parámetro del formulario base.
func UnidadPorDefecto(parametro string) string {
	return ParametrosBase[parametro]
}
