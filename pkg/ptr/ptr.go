package ptr

// Ptr возвращает указатель на переданное значение
// Удобно для передачи опциональных параметров: ptr.Ptr(int64(5))
func Ptr[T any](v T) *T {
	return &v
}
