// Package logger arma el logger estructurado del servicio sobre zerolog.
// Cada entrada lleva el nombre del servicio; las piezas de la aplicación
// (pool, http, motor de inventario) crean subloggers con Componente para
// poder filtrar el log por origen.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Opciones parámetros de construcción del logger del servicio.
type Opciones struct {
	Entorno  string // development -> consola legible; cualquier otro -> JSON
	Nivel    string // trace, debug, info, warn, error
	Servicio string // nombre estampado en cada entrada
}

var niveles = map[string]zerolog.Level{
	"trace": zerolog.TraceLevel,
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// Logger logger del servicio. Envuelve zerolog para que el resto del código
// no dependa del paquete concreto.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger raíz. En development escribe consola legible; en
// el resto de entornos JSON por línea. Un nivel desconocido cae en info.
func New(o Opciones) *Logger {
	var w io.Writer = os.Stdout
	if o.Entorno == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	nivel, ok := niveles[o.Nivel]
	if !ok {
		nivel = zerolog.InfoLevel
	}

	ctx := zerolog.New(w).Level(nivel).With().Timestamp()
	if o.Servicio != "" {
		ctx = ctx.Str("servicio", o.Servicio)
	}
	zl := ctx.Logger()

	// Las librerías que usan el logger global de zerolog escriben aquí mismo.
	log.Logger = zl

	return &Logger{zl: zl}
}

// Componente deriva un sublogger con el campo componente fijo.
func (l *Logger) Componente(nombre string) *Logger {
	return &Logger{zl: l.zl.With().Str("componente", nombre).Logger()}
}

// Salida devuelve una copia que escribe en w. Pensado para capturar el log
// en pruebas.
func (l *Logger) Salida(w io.Writer) *Logger {
	return &Logger{zl: l.zl.Output(w)}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos arbitrarios fijos.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog expone el logger interno para quien necesite la API directa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
