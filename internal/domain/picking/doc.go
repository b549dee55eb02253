// Package picking implementa el motor de asignación de picking: dado un conjunto de
// demandas y una foto del stock por ubicación, calcula de qué ubicaciones sacar,
// cuánto de cada una y en qué orden recorrer la bodega.
//
// Flujo por demanda:
//
//	ParseMultiplier → SelectCandidates → ResolveBaseQuantity → SortByFreshness → Allocate
//
// y por lote: BulkPlan ejecuta lo anterior por cada demanda y GenerateRoute une todas
// las líneas activas en un único recorrido ordenado por zona, posición y nivel.
//
// Todas las funciones son puras: no hacen I/O, no registran logs y no guardan estado
// entre llamadas. Los problemas de calidad de datos se devuelven como []Diagnostic
// para que el caller decida cómo registrarlos. El plan es orientativo; quien confirme
// la extracción debe volver a validar las cantidades contra el stock vivo.
package picking
