// Package wasm4 implements the cartridge host on the real console, a
// WebAssembly runtime mapping the hardware registers at fixed addresses of
// the cartridge linear memory.
//
// The package only builds with TinyGo for wasm. A cartridge registers its
// start function from its main package:
//
//	func init() {
//		wasm4.Run(func(sys *cart.System) (cart.Application, error) {
//			return &game{}, nil
//		})
//	}
//
//	func main() {}
//
// The console then calls the exported start and update functions.
package wasm4
