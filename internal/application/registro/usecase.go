package registro

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/application/session"
	"github.com/aqualab/aqualab-api/internal/domain"
	"github.com/aqualab/aqualab-api/internal/domain/catalogo"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
	"github.com/aqualab/aqualab-api/internal/domain/firma"
)

// UseCase orquesta el registro de una muestra nueva: resolución del cliente
// (con alta inline como escape hatch), captura de campos, captura de las dos
// firmas y envío final al servicio de muestras.
//
// El estado entre pasos vive en un borrador en memoria; no hay guardado
// parcial. El borrador solo se limpia cuando el envío final tiene éxito.
type UseCase struct {
	clientes   ClienteDirectory
	muestras   MuestraService
	borradores *borradorStore
}

// NewUseCase construye el caso de uso de registro.
func NewUseCase(clientes ClienteDirectory, muestras MuestraService) *UseCase {
	return &UseCase{
		clientes:   clientes,
		muestras:   muestras,
		borradores: newBorradorStore(ttlBorrador),
	}
}

// emailRe formato mínimo de email: algo@algo.algo, sin espacios.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// formatoFechaHora formato del campo fecha/hora del formulario.
const formatoFechaHora = "2006-01-02T15:04"

// CrearBorrador abre un borrador nuevo. Solo un administrador registra muestras.
func (uc *UseCase) CrearBorrador(ses session.Sesion) (*Borrador, error) {
	if !ses.Capacidades().RegistrarMuestras {
		return nil, fmt.Errorf("%w: se requieren permisos de administrador para registrar muestras",
			domain.ErrPermisoDenegado)
	}
	return uc.borradores.crear(ses.Documento), nil
}

// Borrador devuelve una copia del borrador indicado si pertenece a la sesión
// actuante.
func (uc *UseCase) Borrador(ses session.Sesion, id string) (*Borrador, error) {
	b, err := uc.borradores.obtener(id)
	if err != nil {
		return nil, err
	}
	if b.CreadoPor != ses.Documento {
		return nil, fmt.Errorf("%w: el borrador pertenece a otra sesión", domain.ErrPermisoDenegado)
	}
	return b, nil
}

// conBorrador ejecuta fn sobre el borrador con el lock del almacén tomado,
// verificando antes que pertenezca a la sesión actuante. Dos peticiones
// simultáneas sobre el mismo borrador se serializan aquí.
func (uc *UseCase) conBorrador(ses session.Sesion, id string, fn func(*Borrador) error) error {
	return uc.borradores.modificar(id, func(b *Borrador) error {
		if b.CreadoPor != ses.Documento {
			return fmt.Errorf("%w: el borrador pertenece a otra sesión", domain.ErrPermisoDenegado)
		}
		return fn(b)
	})
}

// ValidarCliente resuelve el cliente por documento contra el directorio de
// usuarios y lo asocia al borrador. Un cliente no encontrado se reporta como
// ErrNotFound para que el llamador ofrezca el alta inline.
func (uc *UseCase) ValidarCliente(ctx context.Context, ses session.Sesion, borradorID, documento string) (*entity.Usuario, error) {
	if _, err := uc.Borrador(ses, borradorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(documento) == "" {
		return nil, fmt.Errorf("%w: ingrese el número de documento", domain.ErrValidacion)
	}
	// La búsqueda remota ocurre fuera del lock del almacén.
	cliente, err := uc.clientes.BuscarPorDocumento(ctx, ses.Token, documento)
	if err != nil {
		return nil, err
	}
	if err := uc.conBorrador(ses, borradorID, func(b *Borrador) error {
		b.Cliente = cliente
		return nil
	}); err != nil {
		return nil, err
	}
	return cliente, nil
}

// RegistrarCliente da de alta un cliente nuevo y re-ejecuta la resolución
// automáticamente, dejando el cliente asociado al borrador.
func (uc *UseCase) RegistrarCliente(ctx context.Context, ses session.Sesion, borradorID string, in dto.RegistroClienteRequest) (*entity.Usuario, error) {
	if _, err := uc.Borrador(ses, borradorID); err != nil {
		return nil, err
	}
	if err := validarRegistroCliente(in); err != nil {
		return nil, err
	}
	if _, err := uc.clientes.RegistrarCliente(ctx, ses.Token, in); err != nil {
		return nil, err
	}
	return uc.ValidarCliente(ctx, ses, borradorID, in.Documento)
}

func validarRegistroCliente(in dto.RegistroClienteRequest) error {
	var faltantes []string
	if in.Nombre == "" {
		faltantes = append(faltantes, "Nombre")
	}
	if in.Documento == "" {
		faltantes = append(faltantes, "Documento")
	}
	if in.Email == "" {
		faltantes = append(faltantes, "Email")
	}
	if in.Password == "" {
		faltantes = append(faltantes, "Contraseña")
	}
	if len(faltantes) > 0 {
		return fmt.Errorf("%w: los siguientes campos son obligatorios: %s",
			domain.ErrValidacion, strings.Join(faltantes, ", "))
	}
	if !emailRe.MatchString(in.Email) {
		return fmt.Errorf("%w: el formato del correo electrónico no es válido", domain.ErrValidacion)
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrValidacion)
	}
	return nil
}

// ActualizarCampos valida y guarda los campos de captura en el borrador. Si la
// validación falla, el borrador queda intacto y se devuelve el mensaje.
func (uc *UseCase) ActualizarCampos(ses session.Sesion, borradorID string, campos dto.CamposMuestra) (*Borrador, error) {
	var copia Borrador
	err := uc.conBorrador(ses, borradorID, func(b *Borrador) error {
		if err := validarCampos(&campos); err != nil {
			return err
		}
		b.Campos = &campos
		copia = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &copia, nil
}

// validarCampos aplica las reglas de captura: presencia de requeridos,
// pertenencia a los catálogos y condicionales de tipo de agua.
func validarCampos(c *dto.CamposMuestra) error {
	var faltantes []string
	if c.TipoMuestra == "" {
		faltantes = append(faltantes, "el tipo de muestra")
	}
	if c.TipoMuestreo == "" {
		faltantes = append(faltantes, "el tipo de muestreo")
	}
	if c.FechaHora == "" {
		faltantes = append(faltantes, "la fecha y hora")
	}
	if c.LugarMuestreo == "" {
		faltantes = append(faltantes, "el lugar de muestreo")
	}
	if len(c.AnalisisSeleccionados) == 0 {
		faltantes = append(faltantes, "al menos un análisis")
	}
	if len(faltantes) > 0 {
		return fmt.Errorf("%w: complete todos los campos requeridos: falta %s",
			domain.ErrValidacion, strings.Join(faltantes, ", "))
	}

	if c.TipoMuestra != entity.TipoMuestraAgua && c.TipoMuestra != entity.TipoMuestraSuelo {
		return fmt.Errorf("%w: tipo de muestra desconocido %q", domain.ErrValidacion, c.TipoMuestra)
	}
	switch c.TipoMuestreo {
	case entity.MuestreoSimple, entity.MuestreoCompuesto:
	case entity.MuestreoOtro:
		if c.TipoMuestreoOtro == "" {
			return fmt.Errorf("%w: describa el tipo de muestreo", domain.ErrValidacion)
		}
	default:
		return fmt.Errorf("%w: tipo de muestreo desconocido %q", domain.ErrValidacion, c.TipoMuestreo)
	}
	if _, err := time.Parse(formatoFechaHora, c.FechaHora); err != nil {
		return fmt.Errorf("%w: fecha y hora inválidas (formato esperado %s)",
			domain.ErrValidacion, formatoFechaHora)
	}
	if c.PreservacionMuestra != "" && !contiene(entity.TiposPreservacion, c.PreservacionMuestra) {
		return fmt.Errorf("%w: tipo de preservación desconocido %q", domain.ErrValidacion, c.PreservacionMuestra)
	}
	for _, a := range c.AnalisisSeleccionados {
		if !catalogo.EsAnalisisValido(c.TipoMuestra, a) {
			return fmt.Errorf("%w: el análisis %q no está en el catálogo de %s",
				domain.ErrValidacion, a, c.TipoMuestra)
		}
	}

	if c.TipoMuestra == entity.TipoMuestraAgua {
		if c.TipoDeAgua == nil || c.TipoDeAgua.Tipo == "" {
			return fmt.Errorf("%w: el tipo de agua es requerido", domain.ErrValidacion)
		}
		if !contiene(entity.TiposAgua, c.TipoDeAgua.Tipo) {
			return fmt.Errorf("%w: tipo de agua desconocido %q", domain.ErrValidacion, c.TipoDeAgua.Tipo)
		}
		if c.TipoDeAgua.Tipo == entity.TipoAguaOtra &&
			(c.TipoDeAgua.TipoPersonalizado == "" || c.TipoDeAgua.Descripcion == "") {
			return fmt.Errorf("%w: el tipo de agua %q requiere nombre y descripción",
				domain.ErrValidacion, entity.TipoAguaOtra)
		}
	} else if c.TipoDeAgua != nil {
		return fmt.Errorf("%w: una muestra de suelo no lleva tipo de agua", domain.ErrValidacion)
	}
	return nil
}

func contiene(lista []string, v string) bool {
	for _, s := range lista {
		if s == v {
			return true
		}
	}
	return false
}

// FirmarAdministrador captura la firma institucional. Solo una sesión con rol
// administrador puede firmar en esta sección.
func (uc *UseCase) FirmarAdministrador(ses session.Sesion, borradorID, payload string) error {
	return uc.conBorrador(ses, borradorID, func(b *Borrador) error {
		if !ses.Capacidades().RegistrarMuestras {
			return fmt.Errorf("%w: solo los administradores pueden firmar en esta sección", domain.ErrPermisoDenegado)
		}
		if err := firma.Validar(payload); err != nil {
			return err
		}
		b.FirmaAdministrador = payload
		return nil
	})
}

// FirmarCliente captura la firma del cliente. Requiere que la resolución del
// cliente ya haya tenido éxito en este borrador.
func (uc *UseCase) FirmarCliente(ses session.Sesion, borradorID, payload string) error {
	return uc.conBorrador(ses, borradorID, func(b *Borrador) error {
		if b.Cliente == nil {
			return fmt.Errorf("%w: debe validar el cliente antes de firmar", domain.ErrValidacion)
		}
		if err := firma.Validar(payload); err != nil {
			return err
		}
		b.FirmaCliente = payload
		return nil
	})
}

// Enviar arma la muestra y la envía al servicio de muestras. Requiere campos
// válidos, cliente resuelto y ambas firmas. En éxito la muestra creada vuelve
// en estado Recibida y el borrador se descarta; en fallo el borrador queda
// como estaba.
func (uc *UseCase) Enviar(ctx context.Context, ses session.Sesion, borradorID string) (*entity.Muestra, error) {
	b, err := uc.Borrador(ses, borradorID)
	if err != nil {
		return nil, err
	}
	if b.Cliente == nil {
		return nil, fmt.Errorf("%w: debe validar el cliente antes de continuar", domain.ErrValidacion)
	}
	if b.Campos == nil {
		return nil, fmt.Errorf("%w: complete los campos de la muestra antes de enviar", domain.ErrValidacion)
	}
	if b.FirmaAdministrador == "" {
		return nil, fmt.Errorf("%w: se requiere la firma del administrador", domain.ErrValidacion)
	}
	if b.FirmaCliente == "" {
		return nil, fmt.Errorf("%w: se requiere la firma del cliente", domain.ErrValidacion)
	}

	c := b.Campos
	m := &entity.Muestra{
		Documento:              b.Cliente.Documento,
		TipoMuestra:            c.TipoMuestra,
		TipoMuestreo:           c.TipoMuestreo,
		TipoMuestreoOtro:       c.TipoMuestreoOtro,
		FechaHora:              c.FechaHora,
		LugarMuestreo:          c.LugarMuestreo,
		PlanMuestreo:           c.PlanMuestreo,
		CondicionesAmbientales: c.CondicionesAmbientales,
		PreservacionMuestra:    c.PreservacionMuestra,
		IdentificacionMuestra:  c.IdentificacionMuestra,
		AnalisisSeleccionados:  c.AnalisisSeleccionados,
		TipoDeAgua:             c.TipoDeAgua,
		Estado:                 entity.EstadoRecibida,
		Firmas: entity.Firmas{
			FirmaAdministrador: entity.Firma{Firma: b.FirmaAdministrador},
			FirmaCliente:       entity.Firma{Firma: b.FirmaCliente},
		},
		NombreLaboratorista: ses.Nombre,
	}

	creada, err := uc.muestras.RegistrarMuestra(ctx, ses.Token, m)
	if err != nil {
		return nil, err
	}
	uc.borradores.eliminar(borradorID)
	return creada, nil
}

// ABorradorResponse proyección del borrador para la capa HTTP.
func ABorradorResponse(b *Borrador) dto.BorradorResponse {
	return dto.BorradorResponse{
		ID:                 b.ID,
		Campos:             b.Campos,
		Cliente:            b.Cliente,
		FirmaAdministrador: b.FirmaAdministrador != "",
		FirmaCliente:       b.FirmaCliente != "",
		ListoParaEnviar:    b.ListoParaEnviar(),
	}
}
