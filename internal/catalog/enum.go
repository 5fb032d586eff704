package catalog

const (
	EstadoExamenPendiente    = "PENDIENTE"
	EstadoExamenEnProceso    = "EN PROCESO"
	EstadoExamenCompletado   = "EXAMEN COMPLETADO"
	EstadoExamenCalificado   = "EXAMEN CALIFICADO"
	EstadoExamenCancelado    = "CANCELADO"
	EstadoExamenNoPresentado = "NO PRESENTADO"
)

const (
	TipoOpcionUnica    = "OPCION UNICA"
	TipoOpcionMultiple = "OPCION MULTIPLE"
	TipoVerdaderoFalso = "VERDADERO FALSO"
	TipoJustificacion  = "JUSTIFICACION"
)

const (
	EstadoPreguntaSinResponder = "SIN RESPONDER"
	EstadoPreguntaRespondida   = "RESPONDIDA"
	EstadoPreguntaNoRespondida = "NO RESPONDIDA"
)

const (
	NivelBasico     = "BASICO"
	NivelIntermedio = "INTERMEDIO"
	NivelAvanzado   = "AVANZADO"
)

const (
	Verdadero = "VERDADERO"
	Falso     = "FALSO"
)

const (
	GeneroMasculino = "MASCULINO"
	GeneroFemenino  = "FEMENINO"
	GeneroOtro      = "OTRO"
)
