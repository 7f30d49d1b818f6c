package models

// Patch types describe partial updates. A nil field means "leave unchanged";
// a non-nil field overwrites the stored value. Primary keys (Cedula, Placa,
// auto-assigned ids) are deliberately absent: keys are not patchable.

// ClientePatch is a partial update for a Cliente.
type ClientePatch struct {
	Nombre    *string `json:"Nombre"`
	Telefono  *string `json:"Telefono"`
	Direccion *string `json:"Direccion"`
}

// Apply overwrites the set fields of c.
func (p ClientePatch) Apply(c *Cliente) {
	if p.Nombre != nil {
		c.Nombre = *p.Nombre
	}
	if p.Telefono != nil {
		c.Telefono = *p.Telefono
	}
	if p.Direccion != nil {
		c.Direccion = *p.Direccion
	}
}

// VehiculoPatch is a partial update for a Vehiculo.
type VehiculoPatch struct {
	Marca  *string `json:"Marca"`
	Modelo *string `json:"Modelo"`
	Color  *string `json:"Color"`
}

// Apply overwrites the set fields of v.
func (p VehiculoPatch) Apply(v *Vehiculo) {
	if p.Marca != nil {
		v.Marca = *p.Marca
	}
	if p.Modelo != nil {
		v.Modelo = *p.Modelo
	}
	if p.Color != nil {
		v.Color = *p.Color
	}
}

// TarifaPatch is a partial update for a TarifaParking.
type TarifaPatch struct {
	TipoVehiculo *string  `json:"Tipo_Vehiculo"`
	Hora         *float64 `json:"Hora"`
	Fraccion     *float64 `json:"Fraccion"`
}

// Apply overwrites the set fields of t.
func (p TarifaPatch) Apply(t *TarifaParking) {
	if p.TipoVehiculo != nil {
		t.TipoVehiculo = *p.TipoVehiculo
	}
	if p.Hora != nil {
		t.Hora = *p.Hora
	}
	if p.Fraccion != nil {
		t.Fraccion = *p.Fraccion
	}
}

// ServicioPatch is a partial update for a ServicioCarWash.
type ServicioPatch struct {
	Nombre *string  `json:"Nombre"`
	Tarifa *float64 `json:"Tarifa"`
}

// Apply overwrites the set fields of s.
func (p ServicioPatch) Apply(s *ServicioCarWash) {
	if p.Nombre != nil {
		s.Nombre = *p.Nombre
	}
	if p.Tarifa != nil {
		s.Tarifa = *p.Tarifa
	}
}
