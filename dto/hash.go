package dto

import (
	"math"
	"time"
)

type HashResponse struct {
	FileName       string  `json:"file_name"`
	Algorithm      string  `json:"algorithm"`
	HashValue      string  `json:"hash_value"`
	ProcessingTime float64 `json:"processing_time"`
}

type AlgorithmsResponse struct {
	Algorithms []string `json:"algorithms"`
}

type BatchHashResponse struct {
	Results             []HashResponse `json:"results"`
	TotalFiles          int            `json:"total_files"`
	SuccessCount        int            `json:"success_count"`
	ErrorCount          int            `json:"error_count"`
	TotalProcessingTime float64        `json:"total_processing_time"`
}

type VerifyResultResponse struct {
	FileName       string  `json:"file_name"`
	ExpectedHash   string  `json:"expected_hash"`
	ActualHash     string  `json:"actual_hash"`
	Matched        bool    `json:"matched"`
	Algorithm      string  `json:"algorithm"`
	ProcessingTime float64 `json:"processing_time"`
}

type VerifyResponse struct {
	Results             []VerifyResultResponse `json:"results"`
	TotalFiles          int                    `json:"total_files"`
	MatchCount          int                    `json:"match_count"`
	MismatchCount       int                    `json:"mismatch_count"`
	TotalProcessingTime float64                `json:"total_processing_time"`
}

// Seconds renders a duration as seconds rounded to four decimal places, the
// precision all timing fields are reported with.
func Seconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*10000) / 10000
}
