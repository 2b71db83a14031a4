package board

// All shared tables are built exactly once, before any position exists.
// Afterwards they are read-only and safe to share between engine instances.
func init() {
	initGeometry()
	initAttacks()
	initMagics()
	initZobrist()
	initPieceSquareTables()
}
