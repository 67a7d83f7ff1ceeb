package validation

// Proyecto validates project forms.
func Proyecto() Schema {
	return Schema{
		{Name: "nombre", Rules: []Rule{Required("Nombre del proyecto"), MinLength(3), MaxLength(255)}},
		{Name: "descripcion", Rules: []Rule{MaxLength(1000)}},
		{Name: "fecha_inicio"},
		{Name: "fecha_fin"},
	}
}

// Tarea validates task forms.
func Tarea() Schema {
	return Schema{
		{Name: "nombre", Rules: []Rule{Required("Nombre de la tarea"), MinLength(3), MaxLength(255)}},
		{Name: "proyecto_id", Rules: []Rule{Required("Proyecto")}},
		{Name: "horas_estimadas", Rules: []Rule{Required("Horas estimadas"), PositiveNumber("Horas estimadas")}},
		{Name: "descripcion", Rules: []Rule{MaxLength(2000)}},
	}
}

// RegistroHoras validates time log forms.
func RegistroHoras() Schema {
	return Schema{
		{Name: "tarea_id", Rules: []Rule{Required("Tarea")}},
		{Name: "horas", Rules: []Rule{
			Required("Horas trabajadas"), PositiveNumber("Horas trabajadas"), Max(24, "Horas trabajadas"),
		}},
		{Name: "fecha", Rules: []Rule{Required("Fecha")}},
		{Name: "descripcion", Rules: []Rule{Required("Descripción del trabajo"), MinLength(10), MaxLength(500)}},
	}
}

// Empresa validates company forms.
func Empresa() Schema {
	return Schema{
		{Name: "nombre", Rules: []Rule{Required("Nombre de la empresa"), MinLength(2), MaxLength(255)}},
		{Name: "email", Rules: []Rule{Email()}},
		{Name: "telefono", Rules: []Rule{MaxLength(20)}},
		{Name: "direccion", Rules: []Rule{MaxLength(500)}},
	}
}

// Usuario validates user profile forms.
func Usuario() Schema {
	return Schema{
		{Name: "nombre", Rules: []Rule{Required("Nombre"), MinLength(3), MaxLength(100)}},
		{Name: "rol", Rules: []Rule{Required("Rol")}},
		{Name: "tarifa_hora", Rules: []Rule{Min(0, "Tarifa por hora")}},
		{Name: "billable_rate", Rules: []Rule{Min(0, "Tarifa facturable")}},
	}
}

// Invitacion validates invitation forms.
func Invitacion() Schema {
	return Schema{
		{Name: "email", Rules: []Rule{Required("Email"), Email()}},
		{Name: "rol", Rules: []Rule{Required("Rol")}},
	}
}

// Entregable validates deliverable forms.
func Entregable() Schema {
	return Schema{
		{Name: "nombre", Rules: []Rule{Required("Nombre del entregable"), MinLength(3), MaxLength(255)}},
		{Name: "tipo_entregable", Rules: []Rule{Required("Tipo de entregable")}},
		{Name: "descripcion", Rules: []Rule{MaxLength(1000)}},
	}
}

// Comentario validates comment forms.
func Comentario() Schema {
	return Schema{
		{Name: "mensaje", Rules: []Rule{Required("Mensaje"), MinLength(1), MaxLength(2000)}},
	}
}
