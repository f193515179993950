// Package squeeze implements three whole-file byte codecs: Huffman coding,
// adaptive-dictionary LZW, and order-0 arithmetic coding.  Each codec
// produces a self-describing container that its own decoder can reverse.
// The only setting both sides must share is the LZW code width option.
//
// Container integers are big-endian.  Strings are stored as a big-endian
// uint16 byte length followed by the raw bytes.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
//     <https://en.wikipedia.org/wiki/Lempel%E2%80%93Ziv%E2%80%93Welch>
//
//     Witten, Neal & Cleary, "Arithmetic Coding for Data Compression",
//     CACM 30(6), 1987.
//
package squeeze
