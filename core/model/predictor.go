// Package model はモデルの共通ライフサイクル（フォーマッタ、メタデータ推論、
// 静的予測器）を提供する。具体的なモデルはModelTypeを埋め込んで実装する。
package model

import (
	"reflect"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciexplain/pkg/errors"
)

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// PredictFunc は通常の関数をPredictorとして扱うためのアダプタ
type PredictFunc func(X mat.Matrix) (mat.Matrix, error)

// Predict implements Predictor.
func (f PredictFunc) Predict(X mat.Matrix) (mat.Matrix, error) {
	return f(X)
}

// AsPredictor は任意の値が予測関数として呼び出し可能かを検査し、Predictorに変換する。
//
// 受け付ける値:
//   - nilでないPredictor（メソッドを持つ構造体など）
//   - PredictFunc または func(mat.Matrix) (mat.Matrix, error)
//   - func(mat.Matrix) mat.Matrix（エラーを返さない関数）
//   - 上記と同じシグネチャを持つ名前付き関数型（Formatterなど）
//   - mat.Matrixを受け取り、mat.Matrixを実装する型（*mat.Denseなど）を返す関数。
//     最後の戻り値としてerrorを返してもよい
//
// それ以外（nil、nil関数、文字列、数値など）はModelContractErrorを返す。
func AsPredictor(v interface{}) (Predictor, error) {
	if isNil(v) {
		return nil, notCallable(v)
	}
	switch fn := v.(type) {
	case PredictFunc:
		return fn, nil
	case func(mat.Matrix) (mat.Matrix, error):
		return PredictFunc(fn), nil
	case func(mat.Matrix) mat.Matrix:
		return PredictFunc(func(X mat.Matrix) (mat.Matrix, error) {
			return fn(X), nil
		}), nil
	case Predictor:
		return fn, nil
	}
	if p, ok := funcPredictor(reflect.ValueOf(v)); ok {
		return p, nil
	}
	return nil, notCallable(v)
}

var (
	predictFuncType = reflect.TypeOf(PredictFunc(nil))
	matrixType      = reflect.TypeOf((*mat.Matrix)(nil)).Elem()
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
)

// funcPredictor はシグネチャが予測関数として使える任意の関数をPredictorに変換する
func funcPredictor(fn reflect.Value) (Predictor, bool) {
	t := fn.Type()
	if t.Kind() != reflect.Func {
		return nil, false
	}
	if t.ConvertibleTo(predictFuncType) {
		return fn.Convert(predictFuncType).Interface().(PredictFunc), true
	}
	if t.IsVariadic() || t.NumIn() != 1 || !matrixType.AssignableTo(t.In(0)) {
		return nil, false
	}
	switch {
	case t.NumOut() == 1 && t.Out(0).Implements(matrixType):
	case t.NumOut() == 2 && t.Out(0).Implements(matrixType) && t.Out(1) == errorType:
	default:
		return nil, false
	}

	return PredictFunc(func(X mat.Matrix) (mat.Matrix, error) {
		// Elemでmat.Matrix型のまま渡す（Xがnilでも呼び出せる）
		out := fn.Call([]reflect.Value{reflect.ValueOf(&X).Elem()})
		var err error
		if len(out) == 2 && !out[1].IsNil() {
			err = out[1].Interface().(error)
		}
		if isNilValue(out[0]) {
			return nil, err
		}
		return out[0].Interface().(mat.Matrix), err
	}), true
}

// isNilValue は型付きnil（nilの*mat.Denseなど）も検出する
func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func notCallable(v interface{}) error {
	return errors.NewModelContractError("AsPredictor", "predict function must be callable", v)
}

// isNil はインターフェースに包まれたnil関数・nilポインタも検出する
func isNil(v interface{}) bool {
	return v == nil || isNilValue(reflect.ValueOf(v))
}
