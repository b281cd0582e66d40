// internal/types/types.go
package types

// EntityID - идентификатор сущности в ECS.
// Выдаётся по возрастанию, поэтому порядок ID совпадает с порядком создания.
type EntityID uint64
