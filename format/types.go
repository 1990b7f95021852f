package format

// ValueType tags the kind of value a field's representation word describes.
// Tag numbers match the .usdc wire format exactly and must not be
// renumbered.
type ValueType uint8

const (
	Invalid ValueType = 0
	Bool    ValueType = 1
	UChar   ValueType = 2
	Int     ValueType = 3
	UInt    ValueType = 4
	Int64   ValueType = 5
	UInt64  ValueType = 6
	Half    ValueType = 7
	Float   ValueType = 8
	Double  ValueType = 9
	String  ValueType = 10
	Token   ValueType = 11
	Asset   ValueType = 12

	Matrix2d ValueType = 13
	Matrix3d ValueType = 14
	Matrix4d ValueType = 15

	Quatd ValueType = 16
	Quatf ValueType = 17
	Quath ValueType = 18

	Vec2d ValueType = 19
	Vec2f ValueType = 20
	Vec2h ValueType = 21
	Vec2i ValueType = 22
	Vec3d ValueType = 23
	Vec3f ValueType = 24
	Vec3h ValueType = 25
	Vec3i ValueType = 26
	Vec4d ValueType = 27
	Vec4f ValueType = 28
	Vec4h ValueType = 29
	Vec4i ValueType = 30

	Dictionary      ValueType = 31
	TokenListOp     ValueType = 32
	StringListOp    ValueType = 33
	PathListOp      ValueType = 34
	ReferenceListOp ValueType = 35
	IntListOp       ValueType = 36
	Int64ListOp     ValueType = 37
	UIntListOp      ValueType = 38
	UInt64ListOp    ValueType = 39

	PathVector  ValueType = 40
	TokenVector ValueType = 41
	Specifier   ValueType = 42
	Permission  ValueType = 43
	Variability ValueType = 44

	VariantSelectionMap     ValueType = 45
	TimeSamples             ValueType = 46
	Payload                 ValueType = 47
	DoubleVector            ValueType = 48
	LayerOffsetVector       ValueType = 49
	StringVector            ValueType = 50
	ValueBlock              ValueType = 51
	Value                   ValueType = 52
	UnregisteredValue       ValueType = 53
	UnregisteredValueListOp ValueType = 54
	PayloadListOp           ValueType = 55
)

// maxValueType is the highest valid ValueType tag; used to reject a
// representation word whose type tag falls outside the enumerated range.
const maxValueType = PayloadListOp

// Valid reports whether t falls within the enumerated value-type range.
func (t ValueType) Valid() bool {
	return t <= maxValueType
}

var valueTypeNames = [...]string{
	Invalid: "Invalid", Bool: "bool", UChar: "uchar", Int: "int", UInt: "uint",
	Int64: "int64", UInt64: "uint64", Half: "half", Float: "float", Double: "double",
	String: "string", Token: "token", Asset: "asset",
	Matrix2d: "matrix2d", Matrix3d: "matrix3d", Matrix4d: "matrix4d",
	Quatd: "quatd", Quatf: "quatf", Quath: "quath",
	Vec2d: "vec2d", Vec2f: "vec2f", Vec2h: "vec2h", Vec2i: "vec2i",
	Vec3d: "vec3d", Vec3f: "vec3f", Vec3h: "vec3h", Vec3i: "vec3i",
	Vec4d: "vec4d", Vec4f: "vec4f", Vec4h: "vec4h", Vec4i: "vec4i",
	Dictionary: "Dictionary", TokenListOp: "TokenListOp", StringListOp: "StringListOp",
	PathListOp: "PathListOp", ReferenceListOp: "ReferenceListOp", IntListOp: "IntListOp",
	Int64ListOp: "Int64ListOp", UIntListOp: "UIntListOp", UInt64ListOp: "UInt64ListOp",
	PathVector: "PathVector", TokenVector: "TokenVector", Specifier: "Specifier",
	Permission: "Permission", Variability: "Variability",
	VariantSelectionMap: "VariantSelectionMap", TimeSamples: "TimeSamples", Payload: "Payload",
	DoubleVector: "DoubleVector", LayerOffsetVector: "LayerOffsetVector", StringVector: "StringVector",
	ValueBlock: "ValueBlock", Value: "Value", UnregisteredValue: "UnregisteredValue",
	UnregisteredValueListOp: "UnregisteredValueListOp", PayloadListOp: "PayloadListOp",
}

func (t ValueType) String() string {
	if int(t) < len(valueTypeNames) && valueTypeNames[t] != "" {
		return valueTypeNames[t]
	}

	return "Unknown"
}

// SpecType tags the kind of scene-graph node a Spec describes.
type SpecType uint8

const (
	SpecAttribute          SpecType = 1
	SpecConnection         SpecType = 2
	SpecExpression         SpecType = 3
	SpecMapper             SpecType = 4
	SpecMapperArg          SpecType = 5
	SpecPrim               SpecType = 6
	SpecPseudoRoot         SpecType = 7
	SpecRelationship       SpecType = 8
	SpecRelationshipTarget SpecType = 9
	SpecVariant            SpecType = 10
	SpecVariantSet         SpecType = 11
)

func (t SpecType) String() string {
	switch t {
	case SpecAttribute:
		return "Attribute"
	case SpecConnection:
		return "Connection"
	case SpecExpression:
		return "Expression"
	case SpecMapper:
		return "Mapper"
	case SpecMapperArg:
		return "MapperArg"
	case SpecPrim:
		return "Prim"
	case SpecPseudoRoot:
		return "PseudoRoot"
	case SpecRelationship:
		return "Relationship"
	case SpecRelationshipTarget:
		return "RelationshipTarget"
	case SpecVariant:
		return "Variant"
	case SpecVariantSet:
		return "VariantSet"
	default:
		return "Unknown"
	}
}

// SpecifierType is the USD specifier (def/over/class) of a Prim spec.
type SpecifierType uint8

const (
	SpecifierDef   SpecifierType = 0
	SpecifierOver  SpecifierType = 1
	SpecifierClass SpecifierType = 2
)

func (s SpecifierType) String() string {
	switch s {
	case SpecifierDef:
		return "Def"
	case SpecifierOver:
		return "Over"
	case SpecifierClass:
		return "Class"
	default:
		return "Unknown"
	}
}
