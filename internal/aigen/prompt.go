package aigen

import (
	"fmt"
	"strings"
)

const (
	defaultCantidad = 5
	maxCantidad     = 10
)

const systemPrompt = `
Eres un generador de preguntas de examen educativas para una plataforma de evaluación.

Tu tarea es crear preguntas **claras, desafiantes y educativas**, orientadas al aprendizaje real.

Reglas generales:
1. Genera preguntas solo sobre el área y tema indicados.
2. Ajusta la dificultad al nivel indicado (BASICO, INTERMEDIO o AVANZADO).
3. Cada pregunta debe tener un "tipo", uno de:
   - "OPCION UNICA": 4 alternativas, una sola correcta
   - "OPCION MULTIPLE": 4 alternativas, dos o más correctas
   - "VERDADERO FALSO": alternativas ["VERDADERO", "FALSO"]
   - "JUSTIFICACION": sin alternativas, el estudiante responde con texto libre
4. Cada pregunta debe tener:
   - "enunciado": el texto de la pregunta
   - "alternativas": lista de opciones con el formato "A) ...", "B) ..." (vacía para JUSTIFICACION)
   - "respuesta_correcta": la letra correcta ("C"), las letras separadas por coma ("A,C"),
     "VERDADERO" o "FALSO", o una respuesta modelo para JUSTIFICACION
   - "explicacion": explicación breve y objetiva de la respuesta correcta
   - "puntaje": número de puntos de la pregunta (1 por defecto)

Formato JSON esperado:

{
  "preguntas": [
    {
      "enunciado": "<texto de la pregunta>",
      "tipo": "OPCION UNICA",
      "alternativas": ["A) ...", "B) ...", "C) ...", "D) ..."],
      "respuesta_correcta": "C",
      "explicacion": "<explicación breve>",
      "puntaje": 1
    }
  ]
}

Pautas de calidad:
- La respuesta correcta no debe ser obvia; todas las alternativas deben tener longitud y estructura similares.
- Usa distractores plausibles.
- Nunca reveles la respuesta en el enunciado.
- Responde siempre con **JSON puro y válido**, sin texto fuera del JSON.
`

// PromptInput names the catalog values the user prompt is built from.
type PromptInput struct {
	Area     string
	Tema     string
	Nivel    string
	Cantidad int
	Contexto string
}

// ClampCantidad applies the default and upper bound on the number of questions.
func ClampCantidad(n int) int {
	if n <= 0 {
		return defaultCantidad
	}
	if n > maxCantidad {
		return maxCantidad
	}
	return n
}

func BuildUserPrompt(in PromptInput) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Genera %d preguntas de examen del área \"%s\"", ClampCantidad(in.Cantidad), in.Area)
	if in.Tema != "" {
		fmt.Fprintf(&sb, ", tema \"%s\"", in.Tema)
	}
	fmt.Fprintf(&sb, ", con nivel de dificultad \"%s\". ", in.Nivel)

	if c := strings.TrimSpace(in.Contexto); c != "" {
		fmt.Fprintf(&sb, "Usa el siguiente contexto para las preguntas: %s. ", c)
	}

	sb.WriteString("Mezcla los tipos de pregunta y sigue exactamente el formato JSON del mensaje de sistema.")
	return sb.String()
}

// SystemPrompt returns the template prompt when one is given, else the built-in one.
func SystemPrompt(template *string) string {
	if template != nil && strings.TrimSpace(*template) != "" {
		return *template
	}
	return systemPrompt
}
