package reference

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrUnknownEntity = errors.New("unknown reference entity")

// Entity names a reference list as it appears in the records API path.
type Entity string

const (
	EntityPais     Entity = "pais"
	EntityCarrera  Entity = "carrera"
	EntityProducto Entity = "producto"
	EntityOwner    Entity = "owner"
	EntityStatus   Entity = "status"
)

var plurals = map[Entity]string{
	EntityPais:     "paises",
	EntityCarrera:  "carreras",
	EntityProducto: "productos",
	EntityOwner:    "owners",
	EntityStatus:   "status",
}

// Entities lists every known entity.
func Entities() []Entity {
	return []Entity{EntityPais, EntityCarrera, EntityProducto, EntityOwner, EntityStatus}
}

func ParseEntity(s string) (Entity, error) {
	e := Entity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := plurals[e]; !ok {
		return "", ErrUnknownEntity
	}
	return e, nil
}

// Plural is the label used in user-facing load errors.
func (e Entity) Plural() string {
	if p, ok := plurals[e]; ok {
		return p
	}
	return string(e)
}

// Item is a dropdown option.
type Item struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Record is a typed reference row that can be shown as an option.
type Record interface {
	Item() Item
}

// Page is the paginated envelope of the records API.
type Page[T any] struct {
	Data  []T    `json:"data"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Error string `json:"error,omitempty"`
}

type Country struct {
	PaisID     string `json:"pais_id"`
	PaisNombre string `json:"pais_nombre"`
	PaisMoneda string `json:"pais_moneda"`
	PaisActivo bool   `json:"pais_activo"`
}

func (c Country) Item() Item {
	return Item{ID: c.PaisID, Label: c.PaisNombre, Active: c.PaisActivo}
}

type Cuenta struct {
	CuentaID             string `json:"cuenta_id"`
	CuentaTipo           string `json:"cuenta_tipo"`
	CuentaCantidadCuotas int    `json:"cuenta_cantidad_cuotas"`
	CuentaActivo         bool   `json:"cuenta_activo"`
}

type Career struct {
	CarreraID     string `json:"carrera_id"`
	CarreraNombre string `json:"carrera_nombre"`
	CarreraCodigo string `json:"carrera_codigo"`
	CarreraActivo bool   `json:"carrera_activo"`
	Cuenta        Cuenta `json:"cuenta"`
}

func (c Career) Item() Item {
	return Item{ID: c.CarreraID, Label: c.CarreraNombre, Active: c.CarreraActivo}
}

type Product struct {
	ProductoID          string          `json:"producto_id"`
	NombreProducto      string          `json:"nombre_producto"`
	DescripcionProducto string          `json:"descripcion_producto"`
	Precio              decimal.Decimal `json:"precio"`
	Stock               int             `json:"stock"`
	ImagenURL           string          `json:"imagenUrl"`
	Activo              bool            `json:"activo"`
	CreatedAt           string          `json:"createdAt"`
	UpdatedAt           string          `json:"updatedAt"`
}

func (p Product) Item() Item {
	return Item{ID: p.ProductoID, Label: p.NombreProducto, Active: p.Activo}
}

type Owner struct {
	OwnerID     string `json:"owner_id"`
	OwnerNombre string `json:"owner_nombre"`
	OwnerEmail  string `json:"owner_email"`
	OwnerActivo bool   `json:"owner_activo"`
}

func (o Owner) Item() Item {
	return Item{ID: o.OwnerID, Label: o.OwnerNombre, Active: o.OwnerActivo}
}

type Status struct {
	StatusID     string `json:"status_id"`
	StatusNombre string `json:"status_nombre"`
	StatusActivo bool   `json:"status_activo"`
}

func (s Status) Item() Item {
	return Item{ID: s.StatusID, Label: s.StatusNombre, Active: s.StatusActivo}
}
