package dto

type VocabularyResponse struct {
	TaskTypes []string `json:"task_types"`
	Areas     []string `json:"areas"`
}

type AddVocabRequest struct {
	Value string `json:"value"`
}
