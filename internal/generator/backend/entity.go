package backend

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/apiforge/apiforge/internal/generator/naming"
	"github.com/apiforge/apiforge/internal/model"
	"github.com/apiforge/apiforge/internal/typemap"
)

// entityFile renders the TypeORM entity class for one entity. Every column
// decorator is driven by the column type mapping; relationship fields render
// as relation decorators with the inverse side resolved from the model.
func (g *Generator) entityFile(m *model.DataModel, e *model.Entity, n entityNames) string {
	var body bytes.Buffer
	imports := newImportSet()
	imports.typeorm("Entity", "Column")

	fmt.Fprintf(&body, "@Entity('%s')\n", naming.TableName(e.Name, e.TableName))
	for _, idx := range e.Indexes {
		imports.typeorm("Index")
		fields := quoteList(idx.Fields)
		if idx.Unique {
			fmt.Fprintf(&body, "@Index([%s], { unique: true })\n", fields)
		} else {
			fmt.Fprintf(&body, "@Index([%s])\n", fields)
		}
	}
	fmt.Fprintf(&body, "export class %s {\n", n.Pascal)

	for i := range e.Fields {
		f := &e.Fields[i]
		if i > 0 {
			body.WriteString("\n")
		}
		if f.Relationship != nil {
			g.writeRelationField(&body, imports, m, e, f)
		} else {
			g.writeColumnField(&body, imports, m, f)
		}
	}

	if e.Timestamps {
		imports.typeorm("CreateDateColumn", "UpdateDateColumn")
		body.WriteString("\n  @CreateDateColumn()\n  createdAt: Date;\n")
		body.WriteString("\n  @UpdateDateColumn()\n  updatedAt: Date;\n")
	}
	if e.SoftDelete {
		imports.typeorm("DeleteDateColumn")
		body.WriteString("\n  @DeleteDateColumn()\n  deletedAt?: Date;\n")
	}

	body.WriteString("}\n")

	return imports.render() + "\n" + body.String()
}

func (g *Generator) writeColumnField(buf *bytes.Buffer, imports *importSet, m *model.DataModel, f *model.EntityField) {
	dt := f.DataType

	if f.IsPrimaryKey && f.IsGenerated {
		imports.typeorm("PrimaryGeneratedColumn")
		switch f.GenerationStrategy {
		case model.GenerateUUID:
			buf.WriteString("  @PrimaryGeneratedColumn('uuid')\n")
		default:
			buf.WriteString("  @PrimaryGeneratedColumn()\n")
		}
		fmt.Fprintf(buf, "  %s: %s;\n", f.Name, typemap.TSType(dt, ""))
		return
	}
	if f.IsPrimaryKey {
		imports.typeorm("PrimaryColumn")
		buf.WriteString("  @PrimaryColumn()\n")
		fmt.Fprintf(buf, "  %s: %s;\n", f.Name, typemap.TSType(dt, ""))
		return
	}

	if f.IsIndexed {
		imports.typeorm("Index")
		buf.WriteString("  @Index()\n")
	}

	options := []string{fmt.Sprintf("type: '%s'", typemap.ColumnType(dt))}
	if typemap.ColumnType(dt) == "varchar" && dt.Validation != nil && dt.Validation.MaxLength != nil {
		options = append(options, fmt.Sprintf("length: %d", *dt.Validation.MaxLength))
	}
	if dt.Type == model.KindEnum {
		options = append(options, fmt.Sprintf("enum: [%s]", quoteList(g.enumValues(m, dt))))
	}
	if f.IsUnique {
		options = append(options, "unique: true")
	}
	if dt.Nullable || !dt.Required {
		options = append(options, "nullable: true")
	}
	if dt.Default != nil {
		options = append(options, fmt.Sprintf("default: %s", tsLiteral(dt.Default)))
	}

	fmt.Fprintf(buf, "  @Column({ %s })\n", strings.Join(options, ", "))

	optional := ""
	if !dt.Required {
		optional = "?"
	}
	fmt.Fprintf(buf, "  %s%s: %s;\n", f.Name, optional, typemap.TSType(dt, ""))
}

func (g *Generator) writeRelationField(buf *bytes.Buffer, imports *importSet, m *model.DataModel, e *model.Entity, f *model.EntityField) {
	rel := f.Relationship
	target := naming.Pascal(rel.Target)
	imports.entity(target, naming.Kebab(rel.Target))

	var opts []string
	if rel.Cascade {
		opts = append(opts, "cascade: true")
	}
	if rel.Eager {
		opts = append(opts, "eager: true")
	}
	if rel.OnDelete != "" {
		opts = append(opts, fmt.Sprintf("onDelete: '%s'", rel.OnDelete))
	}
	optionsSuffix := ""
	if len(opts) > 0 {
		optionsSuffix = fmt.Sprintf(", { %s }", strings.Join(opts, ", "))
	}

	switch rel.Type {
	case model.ManyToOne:
		imports.typeorm("ManyToOne")
		inverse := inverseFieldName(m, e.Name, rel.Target, model.OneToMany, naming.Camel(naming.Plural(e.Name)))
		fmt.Fprintf(buf, "  @ManyToOne(() => %s, (%s) => %s.%s%s)\n",
			target, naming.Camel(rel.Target), naming.Camel(rel.Target), inverse, optionsSuffix)
		g.writeJoinColumn(buf, imports, rel)
	case model.OneToOne:
		imports.typeorm("OneToOne")
		fmt.Fprintf(buf, "  @OneToOne(() => %s%s)\n", target, optionsSuffix)
		g.writeJoinColumn(buf, imports, rel)
	case model.OneToMany:
		imports.typeorm("OneToMany")
		inverse := inverseFieldName(m, e.Name, rel.Target, model.ManyToOne, naming.Camel(e.Name))
		fmt.Fprintf(buf, "  @OneToMany(() => %s, (%s) => %s.%s%s)\n",
			target, naming.Camel(rel.Target), naming.Camel(rel.Target), inverse, optionsSuffix)
	case model.ManyToMany:
		imports.typeorm("ManyToMany")
		fmt.Fprintf(buf, "  @ManyToMany(() => %s%s)\n", target, optionsSuffix)
		if rel.JoinTable != "" {
			imports.typeorm("JoinTable")
			fmt.Fprintf(buf, "  @JoinTable({ name: '%s' })\n", rel.JoinTable)
		}
	}

	fmt.Fprintf(buf, "  %s: %s;\n", f.Name, typemap.TSType(f.DataType, target))
}

func (g *Generator) writeJoinColumn(buf *bytes.Buffer, imports *importSet, rel *model.Relationship) {
	if rel.ForeignKey == "" {
		return
	}
	imports.typeorm("JoinColumn")
	fmt.Fprintf(buf, "  @JoinColumn({ name: '%s' })\n", rel.ForeignKey)
}

// inverseFieldName finds the field on the target entity whose relationship
// points back at owner with the expected inverse type. The fallback is used
// when the model declares no inverse side.
func inverseFieldName(m *model.DataModel, owner, target string, inverseType model.RelationType, fallback string) string {
	for _, e := range m.Entities {
		if e.Name != target {
			continue
		}
		for _, f := range e.Fields {
			if f.Relationship != nil && f.Relationship.Type == inverseType && f.Relationship.Target == owner {
				return f.Name
			}
		}
	}
	return fallback
}

// enumValues resolves the values of an enum data type, following a
// reference to the top-level definition when needed.
func (g *Generator) enumValues(m *model.DataModel, dt model.DataType) []string {
	if ref, ok := dt.EnumRef(); ok {
		if def, found := m.EnumByName(ref); found {
			return def.Values
		}
	}
	return dt.Enum
}

// enumFile renders a shared TypeScript enum from a top-level definition.
func (g *Generator) enumFile(enum *model.EnumDefinition) string {
	var buf bytes.Buffer
	if enum.Description != "" {
		fmt.Fprintf(&buf, "// %s\n", enum.Description)
	}
	fmt.Fprintf(&buf, "export enum %s {\n", enum.Name)
	for _, value := range enum.Values {
		fmt.Fprintf(&buf, "  %s = '%s',\n", value, value)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// importSet accumulates the import lines an entity file needs.
type importSet struct {
	typeormNames map[string]bool
	entities     map[string]string // class name -> kebab file name
}

func newImportSet() *importSet {
	return &importSet{
		typeormNames: make(map[string]bool),
		entities:     make(map[string]string),
	}
}

func (s *importSet) typeorm(names ...string) {
	for _, name := range names {
		s.typeormNames[name] = true
	}
}

func (s *importSet) entity(class, kebab string) {
	s.entities[class] = kebab
}

func (s *importSet) render() string {
	var buf bytes.Buffer

	names := make([]string, 0, len(s.typeormNames))
	for name := range s.typeormNames {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(&buf, "import { %s } from 'typeorm';\n", strings.Join(names, ", "))

	classes := make([]string, 0, len(s.entities))
	for class := range s.entities {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	for _, class := range classes {
		fmt.Fprintf(&buf, "import { %s } from '../%s/%s.entity';\n", class, s.entities[class], s.entities[class])
	}

	return buf.String()
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("'%s'", v)
	}
	return strings.Join(quoted, ", ")
}

// tsLiteral renders a model default value as a TypeScript literal.
func tsLiteral(v any) string {
	switch value := v.(type) {
	case string:
		return fmt.Sprintf("'%s'", value)
	case bool:
		return fmt.Sprintf("%t", value)
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%v", value)
	case int:
		return fmt.Sprintf("%d", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
