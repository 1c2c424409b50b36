package backend

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/apiforge/apiforge/internal/model"
	"github.com/apiforge/apiforge/internal/typemap"
)

// createDtoFile renders the create DTO: every writable field of the entity
// with class-validator decorators derived from its data type and validation
// rules. Generated fields and relationship objects are excluded.
func (g *Generator) createDtoFile(e *model.Entity, n entityNames) string {
	var body bytes.Buffer
	decorators := make(map[string]bool)

	fmt.Fprintf(&body, "export class Create%sDto {\n", n.Pascal)
	first := true
	for i := range e.Fields {
		f := &e.Fields[i]
		if f.IsGenerated || f.Relationship != nil {
			continue
		}
		if !first {
			body.WriteString("\n")
		}
		first = false
		g.writeDtoField(&body, decorators, f)
	}
	body.WriteString("}\n")

	names := make([]string, 0, len(decorators))
	for name := range decorators {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "import { %s } from 'class-validator';\n\n", strings.Join(names, ", "))
	buf.Write(body.Bytes())
	return buf.String()
}

func (g *Generator) writeDtoField(buf *bytes.Buffer, decorators map[string]bool, f *model.EntityField) {
	dt := f.DataType
	emit := func(name, line string) {
		decorators[name] = true
		fmt.Fprintf(buf, "  %s\n", line)
	}

	if !dt.Required {
		emit("IsOptional", "@IsOptional()")
	}

	switch dt.Type {
	case model.KindString:
		switch {
		case dt.Format == "email" || (dt.Validation != nil && dt.Validation.Email):
			emit("IsEmail", "@IsEmail()")
		case dt.Format == "url" || (dt.Validation != nil && dt.Validation.URL):
			emit("IsUrl", "@IsUrl()")
		case dt.Format == "uuid" || (dt.Validation != nil && dt.Validation.UUID):
			emit("IsUUID", "@IsUUID()")
		default:
			emit("IsString", "@IsString()")
		}
		if v := dt.Validation; v != nil {
			if v.MinLength != nil {
				emit("MinLength", fmt.Sprintf("@MinLength(%d)", *v.MinLength))
			}
			if v.MaxLength != nil {
				emit("MaxLength", fmt.Sprintf("@MaxLength(%d)", *v.MaxLength))
			}
			if v.Pattern != "" {
				emit("Matches", fmt.Sprintf("@Matches(/%s/)", v.Pattern))
			}
		}
	case model.KindNumber:
		if dt.Format == "int32" || dt.Format == "int64" {
			emit("IsInt", "@IsInt()")
		} else {
			emit("IsNumber", "@IsNumber()")
		}
		if v := dt.Validation; v != nil {
			if v.Min != nil {
				emit("Min", fmt.Sprintf("@Min(%s)", trimFloat(*v.Min)))
			}
			if v.Max != nil {
				emit("Max", fmt.Sprintf("@Max(%s)", trimFloat(*v.Max)))
			}
		}
	case model.KindBoolean:
		emit("IsBoolean", "@IsBoolean()")
	case model.KindDate:
		emit("IsDateString", "@IsDateString()")
	case model.KindArray:
		emit("IsArray", "@IsArray()")
	case model.KindObject:
		emit("IsObject", "@IsObject()")
	case model.KindEnum:
		if _, ok := dt.EnumRef(); !ok && len(dt.Enum) > 0 {
			emit("IsIn", fmt.Sprintf("@IsIn([%s])", quoteList(dt.Enum)))
		} else {
			emit("IsString", "@IsString()")
		}
	}

	optional := ""
	if !dt.Required {
		optional = "?"
	}
	fmt.Fprintf(buf, "  %s%s: %s;\n", f.Name, optional, typemap.TSType(dt, ""))
}

// updateDtoFile renders the update DTO as PartialType of the create DTO,
// which makes every field optional without restating them.
func (g *Generator) updateDtoFile(n entityNames) string {
	var buf bytes.Buffer
	buf.WriteString("import { PartialType } from '@nestjs/mapped-types';\n")
	fmt.Fprintf(&buf, "import { Create%sDto } from './create-%s.dto';\n\n", n.Pascal, n.Kebab)
	fmt.Fprintf(&buf, "export class Update%sDto extends PartialType(Create%sDto) {}\n", n.Pascal, n.Pascal)
	return buf.String()
}

func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%v", v)
}
