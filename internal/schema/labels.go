package schema

import "strings"

// Column labels shown in exports and the UI. Columns without an entry
// fall back to a title-cased version of the identifier.
var niceLabels = map[string]string{
	"fecha":                    "Fecha",
	"tipo_de_equipo":           "Tipo de equipo",
	"num_equipo":               "Nº equipo",
	"tipo_toma":                "Tipo toma",
	"temperatura":              "Temperatura (°C)",
	"responsable":              "Responsable",
	"observaciones":            "Observaciones",
	"producto":                 "Producto",
	"tiempo_preparacion":       "Tiempo preparación (min)",
	"num_freidora":             "Nº freidora",
	"filtracion":               "Filtración",
	"cambio_de_aceite":         "Cambio de aceite",
	"tipo_limpieza":            "Tipo de trampa",
	"limpieza":                 "Limpieza",
	"desinfeccion":             "Desinfección",
	"nombre_auxiliar":          "Nombre auxiliar",
	"barba_maquillaje":         "Barba / Maquillaje",
	"cabello_gorro":            "Cabello / Gorro",
	"ausencia_heridas":         "Ausencia de heridas",
	"joyas_accesorios":         "Joyas / Accesorios",
	"perfumes":                 "Perfumes",
	"unas_manos":               "Uñas / Manos",
	"uniforme":                 "Uniforme",
	"zapatos":                  "Zapatos",
	"mp_insumo":                "MP / Insumo",
	"proveedor":                "Proveedor",
	"cantidad":                 "Cantidad",
	"lote":                     "Lote",
	"fecha_vencimiento":        "Fecha vencimiento",
	"n_factura":                "Nº factura",
	"requiere_cer_calidad":     "Req. cert. calidad",
	"aceptado":                 "Aceptado",
	"transporte_limpio":        "Transporte limpio",
	"termoking":                "Termoking",
	"establecimiento":          "Establecimiento",
	"baño_hombre":              "Baño hombre",
	"baño_mujer":               "Baño mujer",
	"salon":                    "Salón",
	"zona":                     "Zona/Equipo/Utensilio",
	"alimento":                 "Alimento",
	"tiempo_exposicion":        "Tiempo exposición",
	"tipo_desinfeccion":        "Tipo desinfección",
	"olor":                     "Olor",
	"sabor":                    "Sabor",
	"color":                    "Color",
	"cloro":                    "Cloro (ppm)",
	"ph":                       "pH",
	"hora_disposicion_residuo": "Hora disposición",
	"correcta_clasificacion":   "Correcta clasificación",
	"organico":                 "Orgánico (verde)",
	"reciclaje":                "Reciclaje (blanca)",
	"ordinario":                "Ordinario (negra)",
}

// Label returns the display label for a column name, falling back to
// a title-cased version of the identifier ("n_factura" -> "N Factura").
func Label(column string) string {
	if lbl, ok := niceLabels[column]; ok {
		return lbl
	}
	words := strings.Split(strings.ReplaceAll(column, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
