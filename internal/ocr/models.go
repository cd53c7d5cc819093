package ocr

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PP-OCRv5 asset names. The detection model and the multi-language
// recognition pair are required; per-script recognition models are optional
// and unlock additional languages.
const (
	DetectionModel   = "PP-OCRv5_mobile_det.mnn"
	RecognitionModel = "PP-OCRv5_mobile_rec.mnn"
	CharsetFile      = "ppocr_keys_v5.txt"

	modelsDownloadURL = "https://github.com/zibo-chen/rust-paddle-ocr/tree/next/models"
)

type languageModel struct {
	recognition string
	charset     string
	lang        string
}

var languageModels = []languageModel{
	{"korean_PP-OCRv5_mobile_rec_infer.mnn", "ppocr_keys_korean.txt", "korean"},
	{"latin_PP-OCRv5_mobile_rec_infer.mnn", "ppocr_keys_latin.txt", "latin"},
	{"cyrillic_PP-OCRv5_mobile_rec_infer.mnn", "ppocr_keys_cyrillic.txt", "cyrillic"},
	{"arabic_PP-OCRv5_mobile_rec_infer.mnn", "ppocr_keys_arabic.txt", "arabic"},
	{"devanagari_PP-OCRv5_mobile_rec_infer.mnn", "ppocr_keys_devanagari.txt", "devanagari"},
	{"th_PP-OCRv5_mobile_rec_infer.mnn", "ppocr_keys_th.txt", "thai"},
	{"el_PP-OCRv5_mobile_rec_infer.mnn", "ppocr_keys_el.txt", "greek"},
	{"ta_PP-OCRv5_mobile_rec_infer.mnn", "ppocr_keys_ta.txt", "tamil"},
	{"te_PP-OCRv5_mobile_rec_infer.mnn", "ppocr_keys_te.txt", "telugu"},
}

// ModelsStatus reports whether the OCR model assets are installed.
type ModelsStatus struct {
	Installed          bool
	ModelsDir          string
	AvailableLanguages []string
	MissingModels      []string
	Instructions       string
}

// CheckModels inspects dir for the PP-OCRv5 model files.
func CheckModels(dir string) ModelsStatus {
	status := ModelsStatus{ModelsDir: dir}

	required := []struct {
		file string
		role string
	}{
		{DetectionModel, "detection"},
		{RecognitionModel, "recognition"},
	}
	for _, req := range required {
		if !fileExists(filepath.Join(dir, req.file)) {
			status.MissingModels = append(status.MissingModels, fmt.Sprintf("%s (%s)", req.file, req.role))
		}
	}

	if fileExists(filepath.Join(dir, CharsetFile)) && fileExists(filepath.Join(dir, RecognitionModel)) {
		status.AvailableLanguages = append(status.AvailableLanguages, "multi")
	}
	for _, model := range languageModels {
		if fileExists(filepath.Join(dir, model.recognition)) && fileExists(filepath.Join(dir, model.charset)) {
			status.AvailableLanguages = append(status.AvailableLanguages, model.lang)
		}
	}

	status.Installed = len(status.MissingModels) == 0 && len(status.AvailableLanguages) > 0
	if status.Installed {
		status.Instructions = "OCR models are installed and ready to use."
	} else {
		status.Instructions = fmt.Sprintf(
			"OCR models not found. Download PP-OCRv5 models from %s and place them in %s (required: %s, %s, %s).",
			modelsDownloadURL, dir, DetectionModel, RecognitionModel, CharsetFile,
		)
	}
	return status
}

// LanguageDisplayName renders a model language token for status output,
// e.g. "korean" -> "Korean". The "multi" pseudo-language is spelled out.
func LanguageDisplayName(lang string) string {
	if lang == "multi" {
		return "Multilingual"
	}
	return cases.Title(language.Und).String(lang)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
