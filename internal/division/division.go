// Package division names the land-subdivision zones and handles their
// site-plan images, stored as data URLs in the persisted snapshot.
package division

// Seed is the built-in zone list used on first run. Divisions are
// created by operator action and never deleted.
var Seed = []string{
	"San Rafael",
	"Colonia Pedregal",
	"Área Monte Bello",
	"Unidad Lomas",
	"Colonia Unión",
	"Colonia Cabañas",
}
