package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/config"
)

var (
	estadosExamen = []string{
		EstadoExamenPendiente,
		EstadoExamenEnProceso,
		EstadoExamenCompletado,
		EstadoExamenCalificado,
		EstadoExamenCancelado,
		EstadoExamenNoPresentado,
	}
	tiposPregunta   = []string{TipoOpcionUnica, TipoOpcionMultiple, TipoVerdaderoFalso, TipoJustificacion}
	estadosPregunta = []string{EstadoPreguntaSinResponder, EstadoPreguntaRespondida, EstadoPreguntaNoRespondida}
	niveles         = []string{NivelBasico, NivelIntermedio, NivelAvanzado}
	verdaderoFalso  = []string{Verdadero, Falso}
	generos         = []string{GeneroMasculino, GeneroFemenino, GeneroOtro}
)

// Seed inserts the fixed catalog values. Running it twice leaves the tables unchanged.
func Seed(ctx context.Context, db *gorm.DB) error {
	log := config.WithContext(ctx)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			table string
			fn    func(*gorm.DB) error
		}{
			{"estados_examen", func(tx *gorm.DB) error { return seedNames[EstadoExamen](tx, estadosExamen) }},
			{"tipos_pregunta", func(tx *gorm.DB) error { return seedNames[TipoPregunta](tx, tiposPregunta) }},
			{"estados_pregunta", func(tx *gorm.DB) error { return seedNames[EstadoPregunta](tx, estadosPregunta) }},
			{"niveles_examen", func(tx *gorm.DB) error { return seedNames[NivelExamen](tx, niveles) }},
			{"verdadero_falso", func(tx *gorm.DB) error { return seedNames[VerdaderoFalso](tx, verdaderoFalso) }},
			{"generos", func(tx *gorm.DB) error { return seedNames[Gender](tx, generos) }},
		}

		for _, step := range steps {
			if err := step.fn(tx); err != nil {
				log.WithError(err).WithField("table", step.table).Error("Failed to seed catalog")
				return fmt.Errorf("seed %s: %w", step.table, err)
			}
		}

		log.Info("Catalog seeded")
		return nil
	})
}

func seedNames[T any](tx *gorm.DB, names []string) error {
	for _, nombre := range names {
		var row T
		if err := tx.Where(map[string]any{"nombre": nombre}).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
