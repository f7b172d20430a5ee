package schema

// The catalog is closed: every table the API can touch is declared
// here, once, at startup. Column sets match the production database.

func idField() Field { return Field{Name: "id", Type: TypeInt} }

func recordTail() []Field {
	return []Field{
		{Name: "responsable", Type: TypeText},
		{Name: "observaciones", Type: TypeLongText, Nullable: true},
		{Name: "usuario", Type: TypeText, Nullable: true},
	}
}

func catalogTables() []*Table {
	return []*Table{
		{
			Name:       "tbl_razon_social",
			FormalName: "Razón Social",
			Fields: []Field{
				idField(),
				{Name: "nombre_razon_social", Type: TypeText},
			},
		},
		{
			Name:       "tbl_restaurante",
			FormalName: "Restaurante",
			Fields: []Field{
				idField(),
				{Name: "nom_restaurante", Type: TypeText},
				{Name: "id_razon_social", Type: TypeInt},
			},
		},
		{
			Name:       "tbl_roles",
			FormalName: "Roles",
			Fields: []Field{
				idField(),
				{Name: "nom_rol", Type: TypeText},
			},
		},
		{
			Name:       "tbl_usuario",
			FormalName: "Usuarios",
			Fields: []Field{
				idField(),
				{Name: "nom_usuario", Type: TypeText},
				{Name: "password_hash", Type: TypeText},
				{Name: "id_rol", Type: TypeInt},
				{Name: "id_razon_social", Type: TypeInt},
				{Name: "id_restaurante", Type: TypeInt, Nullable: true},
				{Name: "activo", Type: TypeBool},
			},
		},
		{
			Name:       "conf_parametro_operativo",
			FormalName: "Parámetros Operativos",
			Fields: []Field{
				idField(),
				{Name: "tabla", Type: TypeText},
				{Name: "texto_html", Type: TypeLongText},
				{Name: "activo", Type: TypeBool},
				{Name: "actualizado", Type: TypeTimestamp, Auto: "update"},
			},
		},
	}
}

func operationalTables() []*Table {
	fecha := Field{Name: "fecha", Type: TypeDate}

	return []*Table{
		{
			Name:        "tbl_temp_equipos",
			FormalName:  "Temp. Equipos",
			Operational: true,
			Fields: append([]Field{
				idField(),
				fecha,
				{Name: "tipo_de_equipo", Type: TypeText},
				{Name: "num_equipo", Type: TypeInt},
				{Name: "tipo_toma", Type: TypeText},
				{Name: "temperatura", Type: TypeDecimal},
			}, recordTail()...),
			DisplayOrder: []string{"fecha", "tipo_de_equipo", "num_equipo", "tipo_toma", "temperatura", "responsable", "observaciones"},
		},
		{
			Name:        "tbl_temp_alimentos",
			FormalName:  "Temp. Alimentos",
			Operational: true,
			Fields: append([]Field{
				idField(),
				fecha,
				{Name: "producto", Type: TypeText},
				{Name: "temperatura", Type: TypeText},
				{Name: "tiempo_preparacion", Type: TypeDecimal},
			}, recordTail()...),
			DisplayOrder: []string{"fecha", "producto", "temperatura", "tiempo_preparacion", "responsable", "observaciones"},
		},
		{
			Name:        "tbl_aceite_quemado",
			FormalName:  "Aceite Quemado",
			Operational: true,
			Fields: append([]Field{
				idField(),
				fecha,
				{Name: "num_freidora", Type: TypeInt},
				{Name: "filtracion", Type: TypeBool},
				{Name: "cambio_de_aceite", Type: TypeBool},
			}, recordTail()...),
			DisplayOrder: []string{"fecha", "num_freidora", "filtracion", "cambio_de_aceite", "responsable", "observaciones"},
		},
		{
			Name:        "tbl_limpieza_trampas_tanque",
			FormalName:  "Limpieza Trampas/Tanque",
			Operational: true,
			Fields: append([]Field{
				idField(),
				fecha,
				{Name: "tipo_limpieza", Type: TypeText},
				{Name: "limpieza", Type: TypeBool},
				{Name: "desinfeccion", Type: TypeBool},
			}, recordTail()...),
			DisplayOrder: []string{"fecha", "tipo_limpieza", "limpieza", "desinfeccion", "responsable", "observaciones"},
		},
		{
			Name:        "tbl_bpm",
			FormalName:  "BPM",
			Operational: true,
			Fields: append([]Field{
				idField(),
				fecha,
				{Name: "nombre_auxiliar", Type: TypeText},
				{Name: "barba_maquillaje", Type: TypeBool},
				{Name: "cabello_gorro", Type: TypeBool},
				{Name: "ausencia_heridas", Type: TypeBool},
				{Name: "joyas_accesorios", Type: TypeBool},
				{Name: "perfumes", Type: TypeBool},
				{Name: "unas_manos", Type: TypeBool},
				{Name: "uniforme", Type: TypeBool},
				{Name: "zapatos", Type: TypeBool},
			}, recordTail()...),
			DisplayOrder: []string{"fecha", "nombre_auxiliar", "barba_maquillaje", "cabello_gorro", "ausencia_heridas", "joyas_accesorios", "perfumes", "unas_manos", "uniforme", "zapatos", "responsable", "observaciones"},
		},
		{
			Name:        "tbl_recepcion_materias_primas",
			FormalName:  "Recepción M.P.",
			Operational: true,
			Fields: append([]Field{
				idField(),
				fecha,
				{Name: "mp_insumo", Type: TypeText},
				{Name: "proveedor", Type: TypeText},
				{Name: "cantidad", Type: TypeDecimal},
				{Name: "temperatura", Type: TypeText},
				{Name: "lote", Type: TypeText},
				{Name: "fecha_vencimiento", Type: TypeDate},
				{Name: "n_factura", Type: TypeText},
				{Name: "requiere_cer_calidad", Type: TypeBool},
				{Name: "aceptado", Type: TypeBool},
				{Name: "transporte_limpio", Type: TypeBool},
				{Name: "termoking", Type: TypeText},
			}, recordTail()...),
			DisplayOrder: []string{"fecha", "mp_insumo", "proveedor", "cantidad", "temperatura", "lote", "fecha_vencimiento", "n_factura", "requiere_cer_calidad", "aceptado", "transporte_limpio", "termoking", "responsable", "observaciones"},
		},
		{
			Name:        "tbl_limpieza_zonascom",
			FormalName:  "Limpieza Zonas Comunes",
			Operational: true,
			Fields: append([]Field{
				idField(),
				fecha,
				{Name: "establecimiento", Type: TypeText},
				{Name: "baño_hombre", Type: TypeBool},
				{Name: "baño_mujer", Type: TypeBool},
				{Name: "salon", Type: TypeBool},
			}, recordTail()...),
			DisplayOrder: []string{"fecha", "establecimiento", "baño_hombre", "baño_mujer", "salon", "responsable", "observaciones"},
		},
		{
			Name:        "tbl_limpieza_general",
			FormalName:  "Limpieza General",
			Operational: true,
			Fields: append([]Field{
				idField(),
				fecha,
				{Name: "zona", Type: TypeText},
				{Name: "profunda", Type: TypeBool},
				{Name: "rutinaria", Type: TypeBool},
			}, recordTail()...),
			DisplayOrder: []string{"fecha", "zona", "profunda", "rutinaria", "responsable", "observaciones"},
		},
		{
			Name:        "tbl_limpieza_alimentos",
			FormalName:  "Limpieza Alimentos",
			Operational: true,
			Fields: append([]Field{
				idField(),
				fecha,
				{Name: "alimento", Type: TypeText},
				{Name: "tiempo_exposicion", Type: TypeText},
				{Name: "tipo_desinfeccion", Type: TypeText},
			}, recordTail()...),
			DisplayOrder: []string{"fecha", "alimento", "tiempo_exposicion", "tipo_desinfeccion", "responsable", "observaciones"},
		},
		{
			Name:        "tbl_agua_potable",
			FormalName:  "Agua Potable",
			Operational: true,
			Fields: append([]Field{
				idField(),
				fecha,
				{Name: "olor", Type: TypeBool},
				{Name: "sabor", Type: TypeBool},
				{Name: "color", Type: TypeBool},
				{Name: "cloro", Type: TypeDecimal},
				{Name: "ph", Type: TypeDecimal},
			}, recordTail()...),
			DisplayOrder: []string{"fecha", "olor", "sabor", "color", "cloro", "ph", "responsable", "observaciones"},
		},
		{
			Name:        "tbl_residuos_solidos",
			FormalName:  "Residuos Sólidos",
			Operational: true,
			Fields: append([]Field{
				idField(),
				fecha,
				{Name: "hora_disposicion_residuo", Type: TypeTime},
				{Name: "correcta_clasificacion", Type: TypeBool},
				{Name: "organico", Type: TypeBool},
				{Name: "reciclaje", Type: TypeBool},
				{Name: "ordinario", Type: TypeBool},
			}, recordTail()...),
			DisplayOrder: []string{"fecha", "hora_disposicion_residuo", "correcta_clasificacion", "organico", "reciclaje", "ordinario", "responsable", "observaciones"},
		},
	}
}
