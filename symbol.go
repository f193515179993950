package squeeze

// Symbol represents a symbol in the arithmetic coder's alphabet: a byte value
// in [0, 255] or EOFSymbol.  Negative symbols are not valid.
type Symbol int32

// EOFSymbol marks the end of an arithmetic-coded stream.
const EOFSymbol = Symbol(256)

// NumSymbols is the size of the arithmetic coder's alphabet.
const NumSymbols = int(EOFSymbol) + 1
