package lead

import "time"

// RequestTypeCreateLead is the broker operation for new leads.
const RequestTypeCreateLead = "create.lead"

// Fixed sub-entities the broker requires on product leads.
const (
	defaultNoInteresadoID = "1"
	defaultCalificacionID = "1"
)

type PaisRef struct {
	PaisID string `json:"pais_id"`
}

type CarreraRef struct {
	CarreraID string `json:"carrera_id"`
}

type ProductoRef struct {
	ProductoID string `json:"producto_id"`
}

type OwnerRef struct {
	OwnerID string `json:"owner_id"`
}

type StatusRef struct {
	StatusID string `json:"status_id"`
}

type NoInteresadoRef struct {
	NoInteresadoID string `json:"no_interesado_id"`
}

type CalificacionRef struct {
	CalificacionID string `json:"calificacion_id"`
}

// Payload is the server-shaped lead. Selections are nested {<entity>_id} objects.
type Payload struct {
	Nombre       string       `json:"nombre"`
	Email        string       `json:"email"`
	TelefonoLada string       `json:"telefono_lada"`
	Pais         PaisRef      `json:"pais"`
	Carrera      *CarreraRef  `json:"carrera,omitempty"`
	Producto     *ProductoRef `json:"producto,omitempty"`
	Owner        *OwnerRef    `json:"owner,omitempty"`
	Status       *StatusRef   `json:"status,omitempty"`

	FechaCreacion  string           `json:"fecha_creacion,omitempty"`
	HoraCreacion   string           `json:"hora_creacion,omitempty"`
	NoInteresado   *NoInteresadoRef `json:"no_interesado,omitempty"`
	Calificacion   *CalificacionRef `json:"calificacion,omitempty"`
	LeadActivo     *bool            `json:"lead_activo,omitempty"`
	LeadConvertido *bool            `json:"lead_convertido,omitempty"`
}

// Envelope is the broker request body.
type Envelope struct {
	RequestType string  `json:"requestType"`
	Data        Payload `json:"data"`
}

// BuildPayload maps a validated draft to the broker shape. now stamps the product defaults.
func BuildPayload(variant Variant, d Draft, now time.Time) Payload {
	p := Payload{
		Nombre:       d.Nombre,
		Email:        d.Email,
		TelefonoLada: d.Telefono,
		Pais:         PaisRef{PaisID: d.Pais},
	}

	switch variant {
	case VariantCareer:
		p.Carrera = &CarreraRef{CarreraID: d.Carrera}
	default:
		active, converted := true, false
		p.Producto = &ProductoRef{ProductoID: d.Producto}
		p.Owner = &OwnerRef{OwnerID: d.Owner}
		p.Status = &StatusRef{StatusID: d.Status}
		p.FechaCreacion = now.Format("2006-01-02")
		p.HoraCreacion = now.Truncate(time.Minute).Format("15:04")
		p.NoInteresado = &NoInteresadoRef{NoInteresadoID: defaultNoInteresadoID}
		p.Calificacion = &CalificacionRef{CalificacionID: defaultCalificacionID}
		p.LeadActivo = &active
		p.LeadConvertido = &converted
	}
	return p
}

func BuildEnvelope(variant Variant, d Draft, now time.Time) Envelope {
	return Envelope{
		RequestType: RequestTypeCreateLead,
		Data:        BuildPayload(variant, d, now),
	}
}
