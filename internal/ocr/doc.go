// Package ocr reads the text on an isolated plate image using Tesseract.
//
// Two engines implement the TextRecognizer interface:
//
//   - CLI runs the tesseract executable, streaming a PNG on stdin and
//     reading plain text from stdout. It honours language, engine mode and
//     page segmentation mode. This is the default engine.
//   - Gosseract calls libtesseract in-process through gosseract/v2. The
//     engine mode is fixed when the library initialises and cannot be
//     changed per call, so a non-default EngineMode is logged and ignored.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// The TESSDATA_PREFIX environment variable, or an explicit tessdata
// directory, points either engine at a custom data location.
//
// # Configuration
//
// Config carries the three Tesseract knobs the plate reader exposes:
//
//   - Language: Tesseract language code, "eng" by default
//   - EngineMode: OCR engine mode 0-3, 1 (LSTM only) by default
//   - PageSegMode: page segmentation mode 0-13, 3 (fully automatic) by default
//
// # Post-processing
//
// Clean strips everything except ASCII letters and digits from the raw
// engine output. Plate text never contains spaces or punctuation, and
// Tesseract routinely hallucinates both around plate borders.
//
// # Error Handling
//
// Any failure to start the engine or to recognise an image is reported as
// an error wrapping ErrUnavailable. An image with no readable text is not an
// error; it yields an empty string.
package ocr
