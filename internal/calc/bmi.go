// SPDX-License-Identifier: Apache-2.0

// Package calc holds the pure biometric calculators: BMI, daily calorie
// targets and activity calorie burn. No package here touches storage or
// the network.
package calc

import "errors"

// BMICategory is the classification band a BMI value falls into.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

var ErrInvalidBiometrics = errors.New("invalid biometrics")

// BMI computes the body mass index from weight in kilograms and height in
// centimetres.
func BMI(weightKg, heightCm float64) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, ErrInvalidBiometrics
	}

	heightM := heightCm / 100
	return weightKg / (heightM * heightM), nil
}

// ClassifyBMI maps a BMI value onto its category band.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}
