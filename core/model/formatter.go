package model

import "gonum.org/v1/gonum/mat"

// Formatter は予測の前後でデータを変換する関数
// (input_formatter / output_formatter / transformer)
type Formatter func(X mat.Matrix) (mat.Matrix, error)

// Identity は入力をそのまま返すFormatter
func Identity(X mat.Matrix) (mat.Matrix, error) {
	return X, nil
}

// orIdentity はnilのFormatterをIdentityに置き換える
func orIdentity(f Formatter) Formatter {
	if f == nil {
		return Identity
	}
	return f
}
