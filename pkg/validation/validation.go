// Package validation は go-playground/validator を使った入力検証を提供する。
//
// 最初の違反で止まらず、すべての違反を apperr.Violation の一覧として返す。
// JSONボディの型不一致もフィールドごとに1件の違反として報告する。
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nao1215/courses/pkg/apperr"
)

// 入力の位置。
const (
	LocationBody   = "body"
	LocationParams = "params"
	LocationQuery  = "query"
)

// Validator は検証ルールを評価する。複数のgoroutineから安全に使用できる。
type Validator struct {
	validate *validator.Validate
}

// New は新しいValidatorを生成する。
// 違反のフィールド名には json, uri, form タグの名前を使用する。
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return &Validator{validate: v}
}

// fieldName は構造体フィールドの外部向けの名前を返す。
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "uri", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct は構造体の validate タグに従って検証し、違反の一覧を返す。
// 違反が無い場合は nil を返す。
func (v *Validator) Struct(location string, s any) []apperr.Violation {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []apperr.Violation{{Type: "field", Msg: err.Error(), Location: location}}
	}

	violations := make([]apperr.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, apperr.Violation{
			Type:     "field",
			Value:    deref(fe.Value()),
			Msg:      message(fe.Field(), fe.Tag(), fe.Param()),
			Path:     fe.Field(),
			Location: location,
		})
	}
	return violations
}

// Var は単一の値を検証する。pathは違反に記録するフィールド名。
func (v *Validator) Var(location, path string, value any, tag string) []apperr.Violation {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []apperr.Violation{{Type: "field", Value: value, Msg: err.Error(), Path: path, Location: location}}
	}

	violations := make([]apperr.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, apperr.Violation{
			Type:     "field",
			Value:    value,
			Msg:      message(path, fe.Tag(), fe.Param()),
			Path:     path,
			Location: location,
		})
	}
	return violations
}

// BindJSON はJSONオブジェクトをdstにフィールド単位でデコードした後、
// dstの validate タグで検証する。dstは構造体へのポインタであること。
//
// 型が一致しないフィールドはデコードせずに型違反として報告し、
// そのフィールドに対するタグの違反は重複して報告しない。
// 空のボディは空オブジェクトとして扱う。
func (v *Validator) BindJSON(location string, body []byte, dst any) []apperr.Violation {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("validation: BindJSON requires a pointer to struct, got %T", dst))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return []apperr.Violation{{
			Type:     "field",
			Msg:      "request body must be a JSON object",
			Location: location,
		}}
	}

	elem := rv.Elem()
	typ := elem.Type()
	typeErrs := make(map[string]apperr.Violation)
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldName(field)
		msg, ok := raw[name]
		if !ok || string(msg) == "null" {
			continue
		}
		if err := json.Unmarshal(msg, elem.Field(i).Addr().Interface()); err != nil {
			var value any
			_ = json.Unmarshal(msg, &value)
			typeErrs[name] = apperr.Violation{
				Type:     "field",
				Value:    value,
				Msg:      typeMessage(name, field.Type),
				Path:     name,
				Location: location,
			}
		}
	}

	structErrs := make(map[string][]apperr.Violation)
	for _, violation := range v.Struct(location, dst) {
		structErrs[violation.Path] = append(structErrs[violation.Path], violation)
	}

	// 違反はフィールドの宣言順に並べる
	var violations []apperr.Violation
	for i := range typ.NumField() {
		name := fieldName(typ.Field(i))
		if violation, ok := typeErrs[name]; ok {
			violations = append(violations, violation)
			continue
		}
		violations = append(violations, structErrs[name]...)
	}
	return violations
}

// message はルールごとの違反メッセージを返す。
func message(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if param == "1" {
			return fmt.Sprintf("%s must not be empty", field)
		}
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "number":
		return fmt.Sprintf("%s must be an integer", field)
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, tag)
	}
}

// typeMessage は型不一致の違反メッセージを返す。
func typeMessage(field string, t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return fmt.Sprintf("%s must be a string", field)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%s must be an integer", field)
	case reflect.Bool:
		return fmt.Sprintf("%s must be a boolean", field)
	default:
		return fmt.Sprintf("%s has an invalid type", field)
	}
}

// deref はポインタを辿った値を返す。nilポインタの場合は nil を返す。
func deref(value any) any {
	rv := reflect.ValueOf(value)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}
